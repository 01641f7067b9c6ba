//go:build !unix

package results

import "os"

// lockFile is a no-op where flock is unavailable; the in-process path lock
// still serializes writers.
func lockFile(*os.File) (func(), error) {
	return func() {}, nil
}

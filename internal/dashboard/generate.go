package dashboard

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Options selects the table the dashboards query.
type Options struct {
	Table string
}

// Render parses dashboard templates and writes rendered dashboards to outDir.
// Templates read the datasource uid from GREPTIMEDB_DATASOURCE_UID.
func Render(outDir string, opts Options) error {
	if opts.Table == "" {
		return fmt.Errorf("table name required")
	}
	funcMap := template.FuncMap{
		"env": func(key string) (string, error) {
			v := os.Getenv(key)
			if v == "" {
				return "", fmt.Errorf("environment variable %s not set", key)
			}
			return v, nil
		},
	}

	names, err := templates.ReadDir("templates")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, entry := range names {
		name := entry.Name()
		t, err := template.New(name).Funcs(funcMap).ParseFS(templates, "templates/"+name)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, strings.TrimSuffix(name, ".tmpl"))
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := t.Execute(f, opts); err != nil {
			f.Close()
			os.Remove(outPath)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one parsed row of a results file.
type Record struct {
	PowerMW    float64
	Node       int
	Sent       int
	Received   int
	SuccessPct float64
	DistanceM  float64
	Type       string
}

// legacyHeader is the header used by files from the original ns-3 port.
var legacyHeader = []string{"Potencia(mW)", "No", "Enviados", "Recebidos", "Sucesso(%)", "Distancia(m)", "Tipo"}

// ReadCSV parses a results file. Repeated header lines are skipped.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.TrimLeadingSpace = true

	var out []Record
	line := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read results line %d: %w", line, err)
		}
		if isHeader(fields) {
			continue
		}
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("parse results line %d: %w", line, err)
		}
		out = append(out, rec)
	}
}

// ReadCSVFile opens path and parses it.
func ReadCSVFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	return ReadCSV(f)
}

func isHeader(fields []string) bool {
	return strings.EqualFold(fields[0], Header[0]) || strings.EqualFold(fields[0], legacyHeader[0])
}

func parseRecord(f []string) (Record, error) {
	var (
		rec Record
		err error
	)
	if rec.PowerMW, err = strconv.ParseFloat(f[0], 64); err != nil {
		return rec, fmt.Errorf("power: %w", err)
	}
	if rec.Node, err = strconv.Atoi(f[1]); err != nil {
		return rec, fmt.Errorf("node: %w", err)
	}
	if rec.Sent, err = strconv.Atoi(f[2]); err != nil {
		return rec, fmt.Errorf("sent: %w", err)
	}
	if rec.Received, err = strconv.Atoi(f[3]); err != nil {
		return rec, fmt.Errorf("received: %w", err)
	}
	if rec.SuccessPct, err = strconv.ParseFloat(f[4], 64); err != nil {
		return rec, fmt.Errorf("success: %w", err)
	}
	if rec.DistanceM, err = strconv.ParseFloat(f[5], 64); err != nil {
		return rec, fmt.Errorf("distance: %w", err)
	}
	rec.Type = f[6]
	return rec, nil
}

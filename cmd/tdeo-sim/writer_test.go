package main

import (
	"testing"

	"tdeo-sim/internal/results"
)

func TestNewWritersPrintOnly(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "localhost:4001")
	w, err := newWriters(true)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := w.(*results.MultiWriter); !ok {
		t.Fatalf("expected *results.MultiWriter, got %T", w)
	}
	db, err := dbWriter(true)
	if err != nil || db != nil {
		t.Fatalf("expected no DB writer in print-only mode, got %T, %v", db, err)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	db, err := dbWriter(false)
	if err != nil {
		t.Fatalf("dbWriter returned error: %v", err)
	}
	if db != nil {
		t.Fatalf("expected nil DB writer without endpoint, got %T", db)
	}
}

func TestNewWritersBadEndpoint(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "db:notaport")
	if _, err := newWriters(false); err == nil {
		t.Fatalf("expected error for invalid endpoint")
	}
}

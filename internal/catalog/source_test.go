package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSourceEntries(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": "m1", "name": "Crystal 60L", "description": "caramel malt"},
		{"id": "h1", "name": "Cascade", "stock": 250}
	]`)
	src := NewFileSource(path)

	entries, err := src.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != "m1" || entries[0].Name != "Crystal 60L" || entries[0].Description != "caramel malt" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestFileSourceStock(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": "m1", "name": "Crystal 60L"},
		{"id": "h1", "name": "Cascade", "stock": 250}
	]`)
	src := NewFileSource(path)

	stock, err := src.Stock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(stock) != 1 || stock["h1"] != 250 {
		t.Errorf("stock = %v, want h1: 250 only", stock)
	}
}

func TestFileSourceErrors(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := src.Entries(context.Background()); err == nil {
		t.Error("missing file should error")
	}

	src = NewFileSource(writeCatalog(t, `{not json`))
	if _, err := src.Entries(context.Background()); err == nil {
		t.Error("malformed file should error")
	}
}

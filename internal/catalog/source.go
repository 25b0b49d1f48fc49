// Package catalog supplies product entries to the matching engine. The
// engine itself is pure; everything that touches a file or a database
// lives behind the Source interface here.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/brewmatch/internal/matcher"
)

// Source supplies the searchable product list.
type Source interface {
	Entries(ctx context.Context) ([]matcher.CatalogEntry, error)
}

// StockSource is implemented by sources that also track on-hand
// quantities, keyed by entry id.
type StockSource interface {
	Stock(ctx context.Context) (map[string]float64, error)
}

// FileSource reads a JSON catalog. The file is an array of entries:
//
//	[{"id": "m1", "name": "Crystal 60L", "description": "", "stock": 2.5}]
type FileSource struct {
	Path string
}

type fileEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Stock       *float64 `json:"stock,omitempty"`
}

// NewFileSource creates a source backed by a JSON file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) load() ([]fileEntry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", s.Path, err)
	}
	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", s.Path, err)
	}
	return entries, nil
}

// Entries loads the catalog entries from the file.
func (s *FileSource) Entries(ctx context.Context) ([]matcher.CatalogEntry, error) {
	raw, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := make([]matcher.CatalogEntry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, matcher.CatalogEntry{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
		})
	}
	return entries, nil
}

// Stock returns the stock quantities recorded in the file. Entries without
// a stock field are omitted.
func (s *FileSource) Stock(ctx context.Context) (map[string]float64, error) {
	raw, err := s.load()
	if err != nil {
		return nil, err
	}
	stock := make(map[string]float64)
	for _, e := range raw {
		if e.Stock != nil {
			stock[e.ID] = *e.Stock
		}
	}
	return stock, nil
}

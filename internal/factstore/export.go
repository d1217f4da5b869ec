// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package factstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 10000000

// ExportYAML writes the matching facts to OutputDir/export.yaml and
// returns the file path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the matching facts to OutputDir/export.json and
// returns the file path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRecords(ctx context.Context, opts QueryOptions) ([]Record, error) {
	opts.MaxResults = exportLimit
	records, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

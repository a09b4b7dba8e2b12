// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

// ExportEntry is a run with its checks, as written to export files.
type ExportEntry struct {
	RunSummary `yaml:",inline"`
	Checks     []types.CheckResult `json:"checks" yaml:"checks"`
}

const exportLimit = 100000

// ExportYAML writes every stored run to dir/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every stored run to dir/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	runs, err := s.List(ctx, ListOptions{Limit: exportLimit})
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(runs))
	for i, r := range runs {
		checks, err := s.Checks(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		entries[i] = ExportEntry{RunSummary: r, Checks: checks}
	}
	return entries, nil
}

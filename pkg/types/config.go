// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Default locations and limits.
const (
	DefaultContentPath  = "content/site.yaml"
	DefaultDistDir      = "dist"
	DefaultHistoryDir   = ".portfolio"
	DefaultBuildTimeout = 2 * time.Minute
)

// VerifyConfig holds settings for the verification stage.
type VerifyConfig struct {
	// BuildCommand is the external command that populates DistDir
	// (e.g. ["portfolio", "build"]). The CLI substitutes its own build
	// subcommand when empty.
	BuildCommand []string `json:"build_command" yaml:"build_command"`

	// WorkDir is the directory the build command runs in (default ".").
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// DistDir is the directory the verifier reads pages from.
	DistDir string `json:"dist_dir" yaml:"dist_dir"`

	// Timeout bounds the build command (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// HistoryConfig holds settings for the verification run history.
type HistoryConfig struct {
	// Dir is the directory containing history.db and export files.
	Dir string `json:"dir" yaml:"dir"`
}

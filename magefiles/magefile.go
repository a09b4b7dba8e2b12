//go:build mage

// Package main contains Mage build targets for portfolio developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the site build expects.
var projectDirs = []string{
	"content",
	"dist",
	".portfolio",
}

// Init creates the project directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "portfolio"
	cmdPkg  = "./cmd/portfolio"
)

func binPath() string { return filepath.Join(binDir, binName) }

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	if err := sh.RunV("go", "build", "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Site renders the portfolio pages into dist/.
func Site() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "build")
}

// Verify builds the site and checks the generated pages, recording the run.
func Verify() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "verify", "--record")
}

// Serve previews dist/ on http://127.0.0.1:8080.
func Serve() error {
	mg.Deps(Site)
	return sh.RunV(binPath(), "serve")
}

// Test runs the Go test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes build output.
func Clean() error {
	for _, dir := range []string{binDir, "dist"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and template line count.
func Stats() error {
	prodLines, err := countLines(".", func(p string) bool {
		return strings.HasSuffix(p, ".go") && !strings.HasSuffix(p, "_test.go")
	})
	if err != nil {
		return err
	}
	testLines, err := countLines(".", func(p string) bool { return strings.HasSuffix(p, "_test.go") })
	if err != nil {
		return err
	}
	tmplLines, err := countLines("internal/site/templates", func(p string) bool { return strings.HasSuffix(p, ".html") })
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of templates (HTML):      %d\n", tmplLines)
	return nil
}

// countLines walks root and counts non-blank lines in files accepted by keep.
// Hidden directories and _examples are skipped.
func countLines(root string, keep func(path string) bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !keep(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site renders the portfolio pages from site content into an output
// directory. Output depends only on the content: the output directory is
// cleared before each build so files from a previous build never survive.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// Page describes one generated page.
type Page struct {
	// Route is the URL path the page is served at (e.g. "/career").
	Route string

	// File is the output path relative to the output directory.
	File string

	// Title is the page title and navigation label.
	Title string

	// Section is the value of the page's data-section marker.
	Section string

	template string
}

// Pages lists the generated pages in navigation order.
var Pages = []Page{
	{Route: "/", File: "index.html", Title: "About", Section: "about", template: "templates/about.html"},
	{Route: "/career", File: "career/index.html", Title: "Career", Section: "career", template: "templates/career.html"},
	{Route: "/projects", File: "projects/index.html", Title: "Projects", Section: "projects", template: "templates/projects.html"},
	{Route: "/contact", File: "contact/index.html", Title: "Contact", Section: "contact", template: "templates/contact.html"},
}

// navItem is one navigation link as seen by the layout template.
type navItem struct {
	Route   string
	Label   string
	Current bool
}

// pageData is the template context for a single page.
type pageData struct {
	Page    Page
	Nav     []navItem
	Content *types.SiteContent
}

var funcs = template.FuncMap{
	// mailto builds the contact form target. The address is validated by
	// LoadContent/Validate before rendering.
	"mailto": func(email string) template.URL {
		return template.URL("mailto:" + email)
	},
}

// BuildResult lists the files written by a build.
type BuildResult struct {
	Files []string
}

// Build renders every page into distDir, replacing any previous output.
// Progress lines are written to w.
func Build(content *types.SiteContent, distDir string, w io.Writer) (BuildResult, error) {
	if err := Validate(content); err != nil {
		return BuildResult{}, err
	}
	if err := resetDir(distDir); err != nil {
		return BuildResult{}, err
	}

	var result BuildResult
	for _, p := range Pages {
		html, err := Render(content, p)
		if err != nil {
			return result, err
		}

		out := filepath.Join(distDir, filepath.FromSlash(p.File))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return result, fmt.Errorf("creating %s: %w", filepath.Dir(out), err)
		}
		if err := os.WriteFile(out, html, 0o644); err != nil {
			return result, fmt.Errorf("writing %s: %w", out, err)
		}

		fmt.Fprintf(w, "wrote: %s\n", out)
		result.Files = append(result.Files, out)
	}

	fmt.Fprintf(w, "\nBuild summary: %d pages written to %s\n", len(result.Files), distDir)
	return result, nil
}

// Render executes the layout and page templates for p and returns the HTML.
func Render(content *types.SiteContent, p Page) ([]byte, error) {
	tmpl, err := template.New(filepath.Base(p.template)).Funcs(funcs).ParseFS(templateFS, layoutTemplate, p.template)
	if err != nil {
		return nil, fmt.Errorf("parsing templates for %s: %w", p.File, err)
	}

	data := pageData{Page: p, Nav: navFor(p), Content: content}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", p.File, err)
	}
	return buf.Bytes(), nil
}

func navFor(current Page) []navItem {
	items := make([]navItem, len(Pages))
	for i, p := range Pages {
		items[i] = navItem{Route: p.Route, Label: p.Title, Current: p.Route == current.Route}
	}
	return items
}

// resetDir removes and recreates distDir. It refuses to clear the working
// directory or a filesystem root.
func resetDir(distDir string) error {
	clean := filepath.Clean(distDir)
	if clean == "." || clean == string(filepath.Separator) || strings.TrimSpace(distDir) == "" {
		return fmt.Errorf("refusing to use %q as output directory", distDir)
	}
	if err := os.RemoveAll(clean); err != nil {
		return fmt.Errorf("clearing %s: %w", clean, err)
	}
	if err := os.MkdirAll(clean, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", clean, err)
	}
	return nil
}

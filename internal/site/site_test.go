// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

func testContent() *types.SiteContent {
	return &types.SiteContent{
		Profile: types.Profile{
			Name:  "Sam Doe",
			Title: "Engineer",
			About: []string{"I write Go."},
		},
		Timeline: []types.TimelineEntry{
			{Role: "Lead", Company: "A Corp", Period: "2022 - present"},
			{Role: "Engineer", Company: "B Corp", Period: "2019 - 2022", Summary: "Services."},
			{Role: "Intern", Company: "C Corp", Period: "2018"},
		},
		Projects: []types.Project{
			{Name: "One", Description: "First", URL: "https://example.com"},
			{Name: "Two", Description: "Second", Tags: []string{"go"}},
			{Name: "Three", Description: "Third"},
		},
		Contact: types.Contact{Email: "hello@example.com"},
	}
}

func readOut(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(data)
}

func TestBuild_WritesAllPages(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	var log bytes.Buffer

	result, err := Build(testContent(), dist, &log)
	require.NoError(t, err)
	assert.Len(t, result.Files, len(Pages))

	for _, p := range Pages {
		assert.FileExists(t, filepath.Join(dist, p.File))
	}
	assert.Contains(t, log.String(), "Build summary: 4 pages")
}

func TestBuild_Markup(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	_, err := Build(testContent(), dist, &bytes.Buffer{})
	require.NoError(t, err)

	about := readOut(t, dist, "index.html")
	assert.Equal(t, 1, strings.Count(about, `data-section="about"`))
	assert.Contains(t, about, "About Me")
	assert.Contains(t, about, `href="/career"`)
	assert.Equal(t, 1, strings.Count(about, `aria-current="page"`))
	assert.Contains(t, about, `<a href="/" aria-current="page">About</a>`)

	career := readOut(t, dist, "career/index.html")
	assert.Contains(t, career, `data-section="career"`)
	assert.Contains(t, career, "Career Timeline")
	assert.Equal(t, 3, strings.Count(career, "data-timeline-item"))
	assert.Contains(t, career, `<a href="/career" aria-current="page">Career</a>`)

	projects := readOut(t, dist, "projects/index.html")
	assert.Equal(t, 3, strings.Count(projects, "data-project-card"))
	assert.Contains(t, projects, `href="https://example.com"`)

	contact := readOut(t, dist, "contact/index.html")
	assert.Contains(t, contact, `action="mailto:hello@example.com"`)
	assert.Contains(t, contact, `name="email"`)
}

func TestBuild_EscapesContent(t *testing.T) {
	c := testContent()
	c.Profile.About = []string{`<script>alert("x")</script>`}
	dist := filepath.Join(t.TempDir(), "dist")

	_, err := Build(c, dist, &bytes.Buffer{})
	require.NoError(t, err)

	about := readOut(t, dist, "index.html")
	assert.NotContains(t, about, "<script>")
	assert.Contains(t, about, "&lt;script&gt;")
}

func TestBuild_Deterministic(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")

	_, err := Build(testContent(), dist, &bytes.Buffer{})
	require.NoError(t, err)
	first := map[string]string{}
	for _, p := range Pages {
		first[p.File] = readOut(t, dist, p.File)
	}

	_, err = Build(testContent(), dist, &bytes.Buffer{})
	require.NoError(t, err)
	for _, p := range Pages {
		assert.Equal(t, first[p.File], readOut(t, dist, p.File), "page %s changed between builds", p.File)
	}
}

func TestBuild_RemovesStaleOutput(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "old"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "old", "index.html"), []byte("stale"), 0o644))

	_, err := Build(testContent(), dist, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dist, "old", "index.html"))
}

func TestBuild_RefusesWorkingDirectory(t *testing.T) {
	for _, dir := range []string{".", "", "/"} {
		_, err := Build(testContent(), dir, &bytes.Buffer{})
		assert.Error(t, err, "dist dir %q", dir)
	}
}

func TestBuild_FewerTimelineEntries(t *testing.T) {
	c := testContent()
	c.Timeline = c.Timeline[:2]
	dist := filepath.Join(t.TempDir(), "dist")

	_, err := Build(c, dist, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(readOut(t, dist, "career/index.html"), "data-timeline-item"))
}

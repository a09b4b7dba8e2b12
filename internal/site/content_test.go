// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadContent(t *testing.T) {
	path := writeContent(t, `
profile:
  name: Sam Doe
  about: ["Hello."]
timeline:
  - role: Engineer
    company: A Corp
    period: 2020
projects:
  - name: Site
    description: This site
    url: https://example.com
contact:
  email: hello@example.com
`)
	c, err := LoadContent(path)
	require.NoError(t, err)
	assert.Equal(t, "Sam Doe", c.Profile.Name)
	assert.Len(t, c.Timeline, 1)
	assert.Equal(t, "https://example.com", c.Projects[0].URL)
	assert.Equal(t, "hello@example.com", c.Contact.Email)
}

func TestLoadContent_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "missing name",
			body:   "contact:\n  email: hello@example.com\n",
			errMsg: "profile.name is required",
		},
		{
			name:   "bad email",
			body:   "profile:\n  name: Sam\ncontact:\n  email: Sam <sam@example.com>\n",
			errMsg: "contact.email",
		},
		{
			name:   "project without name",
			body:   "profile:\n  name: Sam\nprojects:\n  - description: x\ncontact:\n  email: a@b.io\n",
			errMsg: "projects[0].name is required",
		},
		{
			name:   "non-http project url",
			body:   "profile:\n  name: Sam\nprojects:\n  - name: x\n    url: javascript:alert(1)\ncontact:\n  email: a@b.io\n",
			errMsg: "must be an http(s) URL",
		},
		{
			name:   "malformed yaml",
			body:   "profile: [unterminated\n",
			errMsg: "parsing content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadContent(writeContent(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadContent_MissingFile(t *testing.T) {
	_, err := LoadContent(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadContent_RepositoryContent(t *testing.T) {
	c, err := LoadContent(filepath.Join("..", "..", "content", "site.yaml"))
	require.NoError(t, err)
	assert.Len(t, c.Timeline, 3)
	assert.Len(t, c.Projects, 3)
	assert.Equal(t, "hello@example.com", c.Contact.Email)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

// ErrInvalidContent is wrapped by every validation failure.
var ErrInvalidContent = errors.New("invalid site content")

// LoadContent reads and validates the site content YAML at path.
func LoadContent(path string) (*types.SiteContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	var content types.SiteContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	if err := Validate(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// Validate checks the fields every page relies on.
func Validate(c *types.SiteContent) error {
	if c == nil {
		return fmt.Errorf("%w: no content", ErrInvalidContent)
	}

	var problems []string
	if strings.TrimSpace(c.Profile.Name) == "" {
		problems = append(problems, "profile.name is required")
	}
	if _, err := mail.ParseAddress(c.Contact.Email); err != nil || strings.ContainsAny(c.Contact.Email, " <>") {
		problems = append(problems, fmt.Sprintf("contact.email %q is not a plain email address", c.Contact.Email))
	}
	for i, e := range c.Timeline {
		if strings.TrimSpace(e.Role) == "" {
			problems = append(problems, fmt.Sprintf("timeline[%d].role is required", i))
		}
	}
	for i, p := range c.Projects {
		if strings.TrimSpace(p.Name) == "" {
			problems = append(problems, fmt.Sprintf("projects[%d].name is required", i))
		}
		if p.URL != "" {
			u, err := url.Parse(p.URL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				problems = append(problems, fmt.Sprintf("projects[%d].url %q must be an http(s) URL", i, p.URL))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
	}
	return nil
}

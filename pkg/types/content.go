// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Profile describes the site owner shown on the about page.
type Profile struct {
	// Name is the owner's display name.
	Name string `json:"name" yaml:"name"`

	// Title is a one-line role description (e.g. "Backend Engineer").
	Title string `json:"title" yaml:"title"`

	// About holds the paragraphs of the about section.
	About []string `json:"about" yaml:"about"`
}

// TimelineEntry is one position on the career page.
type TimelineEntry struct {
	Role    string `json:"role" yaml:"role"`
	Company string `json:"company" yaml:"company"`

	// Period is a free-form date range (e.g. "2021 - present").
	Period  string `json:"period" yaml:"period"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Project is one card on the projects page.
type Project struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	// URL is an optional external link for the card.
	URL  string   `json:"url,omitempty" yaml:"url,omitempty"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Contact holds the contact page settings.
type Contact struct {
	// Email is the mail-to target of the contact form.
	Email string `json:"email" yaml:"email"`

	// Intro is the text shown above the form.
	Intro string `json:"intro,omitempty" yaml:"intro,omitempty"`
}

// SiteContent is the full content of the portfolio, loaded from site.yaml.
type SiteContent struct {
	Profile  Profile         `json:"profile" yaml:"profile"`
	Timeline []TimelineEntry `json:"timeline" yaml:"timeline"`
	Projects []Project       `json:"projects" yaml:"projects"`
	Contact  Contact         `json:"contact" yaml:"contact"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import "github.com/pdiddy/portfolio-site/pkg/types"

// PageExpectations pairs an output page with the checks it must satisfy.
type PageExpectations struct {
	// Page is the path relative to the output directory.
	Page         string
	Expectations []types.Expectation
}

// DefaultExpectations returns the fixed expectation set for the portfolio
// site, in page order.
func DefaultExpectations() []PageExpectations {
	return []PageExpectations{
		{
			Page: "index.html",
			Expectations: []types.Expectation{
				CountOf("about section marker", `data-section="about"`, 1),
				Contains("about heading", `About Me`),
				Contains("navigation link to career", `href="/career"`),
				CountOf("current page marked in navigation", `aria-current="page"`, 1),
			},
		},
		{
			Page: "career/index.html",
			Expectations: []types.Expectation{
				Contains("career section marker", `data-section="career"`),
				Contains("career heading", `Career Timeline`),
				CountOf("timeline items", `data-timeline-item`, 3),
			},
		},
		{
			Page: "projects/index.html",
			Expectations: []types.Expectation{
				Contains("projects section marker", `data-section="projects"`),
				CountOf("project cards", `data-project-card`, 3),
				Contains("link to example.com", `href="https://example\.com/?"`),
			},
		},
		{
			Page: "contact/index.html",
			Expectations: []types.Expectation{
				Contains("contact section marker", `data-section="contact"`),
				Selects("mailto contact form", `form[action="mailto:hello@example.com"]`, 0),
				Selects("email input", `input[name="email"]`, 0),
			},
		},
	}
}

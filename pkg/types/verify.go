// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExpectationKind selects how an Expectation is evaluated against a page.
type ExpectationKind string

const (
	// KindMatch requires the pattern to match at least once.
	KindMatch ExpectationKind = "match"

	// KindCount requires the pattern to match exactly Count times.
	KindCount ExpectationKind = "count"

	// KindSelector requires the CSS selector to match exactly Count
	// elements, or at least one element when Count is zero.
	KindSelector ExpectationKind = "selector"
)

// Expectation is a single content requirement for an output page.
type Expectation struct {
	// Description is the human-readable form shown in reports.
	Description string `json:"description" yaml:"description"`

	Kind ExpectationKind `json:"kind" yaml:"kind"`

	// Pattern is a regular expression (match, count) or a CSS selector.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Count is the exact number of occurrences required.
	Count int `json:"count,omitempty" yaml:"count,omitempty"`
}

// CheckResult is the outcome of one Expectation on one page.
type CheckResult struct {
	Page        string      `json:"page" yaml:"page"`
	Expectation Expectation `json:"expectation" yaml:"expectation"`
	Passed      bool        `json:"passed" yaml:"passed"`

	// Got is the number of occurrences observed.
	Got int `json:"got" yaml:"got"`

	// Error is set when the expectation could not be evaluated
	// (bad pattern, page not found).
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// PageReport groups the checks of one output page.
type PageReport struct {
	Page string `json:"page" yaml:"page"`

	// Found is false when the page file does not exist.
	Found  bool          `json:"found" yaml:"found"`
	Checks []CheckResult `json:"checks" yaml:"checks"`
}

// Passed reports whether the page exists and every check passed.
func (p PageReport) Passed() bool {
	if !p.Found {
		return false
	}
	for _, c := range p.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Report is the outcome of a full verification run.
type Report struct {
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Pages     []PageReport  `json:"pages" yaml:"pages"`
}

// Passed reports whether every page passed.
func (r Report) Passed() bool {
	for _, p := range r.Pages {
		if !p.Passed() {
			return false
		}
	}
	return true
}

// Failures returns every failed check across all pages in page order.
func (r Report) Failures() []CheckResult {
	var out []CheckResult
	for _, p := range r.Pages {
		for _, c := range p.Checks {
			if !c.Passed {
				out = append(out, c)
			}
		}
	}
	return out
}

// CheckCount returns the total number of checks evaluated.
func (r Report) CheckCount() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.Checks)
	}
	return n
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

// Contains returns an expectation that pattern matches at least once.
func Contains(description, pattern string) types.Expectation {
	return types.Expectation{Description: description, Kind: types.KindMatch, Pattern: pattern}
}

// CountOf returns an expectation that pattern matches exactly n times.
func CountOf(description, pattern string, n int) types.Expectation {
	return types.Expectation{Description: description, Kind: types.KindCount, Pattern: pattern, Count: n}
}

// Selects returns an expectation that the CSS selector matches exactly n
// elements, or at least one element when n is zero.
func Selects(description, selector string, n int) types.Expectation {
	return types.Expectation{Description: description, Kind: types.KindSelector, Pattern: selector, Count: n}
}

// Check evaluates every expectation against html independently. A failed or
// unevaluable expectation never prevents the others from running.
func Check(page, html string, expectations []types.Expectation) []types.CheckResult {
	var doc *goquery.Document
	var docErr error
	parsed := false

	results := make([]types.CheckResult, 0, len(expectations))
	for _, e := range expectations {
		res := types.CheckResult{Page: page, Expectation: e}

		switch e.Kind {
		case types.KindMatch, types.KindCount:
			re, err := regexp.Compile(e.Pattern)
			if err != nil {
				res.Error = fmt.Sprintf("invalid pattern: %v", err)
				break
			}
			res.Got = len(re.FindAllStringIndex(html, -1))
			if e.Kind == types.KindMatch {
				res.Passed = res.Got > 0
			} else {
				res.Passed = res.Got == e.Count
			}

		case types.KindSelector:
			if !parsed {
				doc, docErr = goquery.NewDocumentFromReader(strings.NewReader(html))
				parsed = true
			}
			if docErr != nil {
				res.Error = fmt.Sprintf("parsing HTML: %v", docErr)
				break
			}
			got, err := countSelection(doc, e.Pattern)
			if err != nil {
				res.Error = err.Error()
				break
			}
			res.Got = got
			if e.Count == 0 {
				res.Passed = got > 0
			} else {
				res.Passed = got == e.Count
			}

		default:
			res.Error = fmt.Sprintf("unknown expectation kind %q", e.Kind)
		}

		results = append(results, res)
	}
	return results
}

// countSelection compiles selector and counts the matching elements.
func countSelection(doc *goquery.Document, selector string) (int, error) {
	// goquery matches nothing on an invalid selector; compile it first so
	// a typo is reported instead of counted as zero.
	if _, err := cascadia.Compile(selector); err != nil {
		return 0, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return doc.Find(selector).Length(), nil
}

// Describe renders the requirement part of an expectation for reports,
// e.g. `exactly 3 × /data-timeline-item/`.
func Describe(e types.Expectation) string {
	switch e.Kind {
	case types.KindCount:
		return fmt.Sprintf("exactly %d × /%s/", e.Count, e.Pattern)
	case types.KindSelector:
		if e.Count == 0 {
			return fmt.Sprintf("at least 1 × %s", e.Pattern)
		}
		return fmt.Sprintf("exactly %d × %s", e.Count, e.Pattern)
	default:
		return fmt.Sprintf("matches /%s/", e.Pattern)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

// WriteReport prints one line per check, grouped by page, followed by a
// summary line.
func WriteReport(w io.Writer, r types.Report) {
	for _, p := range r.Pages {
		if !p.Found {
			fmt.Fprintf(w, "missing: %s (page not found)\n", p.Page)
			continue
		}
		status := "ok"
		if !p.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%-7s  %s\n", status, p.Page)
		for _, c := range p.Checks {
			switch {
			case c.Error != "":
				fmt.Fprintf(w, "  error   %s: %s\n", c.Expectation.Description, c.Error)
			case c.Passed:
				fmt.Fprintf(w, "  pass    %s\n", c.Expectation.Description)
			default:
				fmt.Fprintf(w, "  fail    %s: want %s, got %d\n", c.Expectation.Description, Describe(c.Expectation), c.Got)
			}
		}
	}

	failed := len(r.Failures())
	fmt.Fprintf(w, "\nVerify summary: %d pages, %d checks, %d passed, %d failed\n",
		len(r.Pages), r.CheckCount(), r.CheckCount()-failed, failed)
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/portfolio-site/internal/history"
	"github.com/pdiddy/portfolio-site/internal/verify"
	"github.com/pdiddy/portfolio-site/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded verification runs",
	Long: `History lists verification runs stored with verify --record, newest
first. Pass a run ID to show that run's checks. Use --export to write every
run to export.yaml and export.json in the history directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(types.HistoryConfig{Dir: setting(cmd, "history-dir", "history.dir")})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if prune, _ := cmd.Flags().GetInt("prune"); prune > 0 {
		removed, err := store.Prune(ctx, prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pruned %d run(s)\n", removed)
	}

	if export, _ := cmd.Flags().GetBool("export"); export {
		yamlPath, err := store.ExportYAML(ctx)
		if err != nil {
			return err
		}
		jsonPath, err := store.ExportJSON(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %s and %s\n", yamlPath, jsonPath)
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", args[0], err)
		}
		checks, err := store.Checks(ctx, id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, checks)
		}
		formatChecks(out, checks)
		return nil
	}

	failedOnly, _ := cmd.Flags().GetBool("failed")
	page, _ := cmd.Flags().GetString("page")
	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := store.List(ctx, history.ListOptions{FailedOnly: failedOnly, Page: page, Limit: limit})
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}
	formatRuns(out, runs)
	return nil
}

func formatRuns(w io.Writer, runs []history.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-20s  %-6s  %-6s  %-8s  %s\n", "ID", "Started", "Result", "Checks", "Failures", "Duration")
	fmt.Fprintln(w, strings.Repeat("-", 66))
	for _, r := range runs {
		result := "pass"
		if !r.Passed {
			result = "FAIL"
		}
		fmt.Fprintf(w, "%-5d  %-20s  %-6s  %-6d  %-8d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), result, r.CheckCount, r.Failures, r.Duration)
	}
}

func formatChecks(w io.Writer, checks []types.CheckResult) {
	for _, c := range checks {
		switch {
		case c.Error != "":
			fmt.Fprintf(w, "error  %-20s  %s: %s\n", c.Page, c.Expectation.Description, c.Error)
		case c.Passed:
			fmt.Fprintf(w, "pass   %-20s  %s\n", c.Page, c.Expectation.Description)
		default:
			fmt.Fprintf(w, "fail   %-20s  %s: want %s, got %d\n", c.Page, c.Expectation.Description, verify.Describe(c.Expectation), c.Got)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	historyCmd.Flags().String("history-dir", types.DefaultHistoryDir, "directory for the run history database")
	historyCmd.Flags().Bool("failed", false, "only list runs with failures")
	historyCmd.Flags().String("page", "", "only list runs with a failed check on this page")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int("prune", 0, "keep only the newest N runs")
	historyCmd.Flags().Bool("json", false, "output results as JSON")
	historyCmd.Flags().Bool("export", false, "export all runs to YAML and JSON files")

	rootCmd.AddCommand(historyCmd)
}

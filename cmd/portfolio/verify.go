// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/portfolio-site/internal/history"
	"github.com/pdiddy/portfolio-site/internal/runner"
	"github.com/pdiddy/portfolio-site/internal/verify"
	"github.com/pdiddy/portfolio-site/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Build the site and check the generated pages",
	Long: `Verify runs the build command, then checks each generated page for its
section marker and content: the about page's navigation, exactly three career
timeline items, exactly three project cards, and the mailto contact form.

A failed build aborts verification. Failed checks are reported per page and
do not stop the remaining checks. The exit status is non-zero if any check
fails.

By default the build command is this binary's own build subcommand; set
verify.build_command in the config file (or --build-command) to verify the
output of another generator.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := verifyConfig(cmd)
	if err != nil {
		return err
	}

	v := verify.New(runner.New(cmd.ErrOrStderr(), cmd.ErrOrStderr(), logger), cfg, logger)

	ctx := context.Background()
	var report types.Report
	if skip, _ := cmd.Flags().GetBool("skip-build"); skip {
		report, err = v.VerifyPages(ctx)
	} else {
		report, err = v.Run(ctx)
	}
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := verify.WriteJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		verify.WriteReport(cmd.OutOrStdout(), report)
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		if err := recordRun(ctx, cmd, report); err != nil {
			return err
		}
	}

	if !report.Passed() {
		return fmt.Errorf("%d check(s) failed", len(report.Failures()))
	}
	return nil
}

func recordRun(ctx context.Context, cmd *cobra.Command, report types.Report) error {
	store, err := history.NewStore(types.HistoryConfig{Dir: setting(cmd, "history-dir", "history.dir")})
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, report)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "recorded run %d\n", id)
	return nil
}

// verifyConfig merges flags and config file values into a VerifyConfig.
func verifyConfig(cmd *cobra.Command) (types.VerifyConfig, error) {
	cfg := types.VerifyConfig{
		DistDir: setting(cmd, "dist", "site.dist_dir"),
		WorkDir: setting(cmd, "work-dir", "verify.work_dir"),
	}

	timeout, err := time.ParseDuration(setting(cmd, "timeout", "verify.timeout"))
	if err != nil {
		return cfg, fmt.Errorf("parsing timeout: %w", err)
	}
	cfg.Timeout = timeout

	if f := cmd.Flags().Lookup("build-command"); f != nil && f.Changed {
		cfg.BuildCommand, _ = cmd.Flags().GetStringSlice("build-command")
	} else {
		cfg.BuildCommand = viper.GetStringSlice("verify.build_command")
	}
	if len(cfg.BuildCommand) == 0 {
		self, err := os.Executable()
		if err != nil {
			return cfg, fmt.Errorf("locating portfolio binary: %w", err)
		}
		// The build runs in WorkDir, so hand it paths that resolve the same
		// way they do here.
		content, err := filepath.Abs(setting(cmd, "content", "site.content"))
		if err != nil {
			return cfg, fmt.Errorf("resolving content path: %w", err)
		}
		dist, err := filepath.Abs(cfg.DistDir)
		if err != nil {
			return cfg, fmt.Errorf("resolving dist path: %w", err)
		}
		cfg.BuildCommand = []string{self, "build", "--content", content, "--dist", dist}
	}
	return cfg, nil
}

func init() {
	verifyCmd.Flags().String("content", types.DefaultContentPath, "site content YAML passed to the default build command")
	verifyCmd.Flags().String("dist", types.DefaultDistDir, "output directory to verify")
	verifyCmd.Flags().String("work-dir", ".", "directory the build command runs in")
	verifyCmd.Flags().StringSlice("build-command", nil, "build command and arguments (comma-separated)")
	verifyCmd.Flags().String("timeout", "2m", "maximum build duration")
	verifyCmd.Flags().Bool("skip-build", false, "check the existing output without building")
	verifyCmd.Flags().Bool("json", false, "print the report as JSON")
	verifyCmd.Flags().Bool("record", false, "store the report in the run history")
	verifyCmd.Flags().String("history-dir", types.DefaultHistoryDir, "directory for the run history database")

	rootCmd.AddCommand(verifyCmd)
}

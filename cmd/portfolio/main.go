// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the portfolio CLI: it builds the
// static portfolio site, verifies the generated pages, serves them for
// preview, and keeps a history of verification runs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the diagnostic logger, initialized before every command runs.
var logger = zap.NewNop()

// rootCmd is the base command for the portfolio CLI.
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Build and verify a static portfolio site",
	Long: `portfolio renders the about, career, projects, and contact pages from
content/site.yaml into dist/, and verifies that a build produces pages with
the expected markup: section markers, navigation, timeline items, project
cards, and a mailto contact form.

Each stage is a subcommand: build, verify, serve, and history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./portfolio.yaml or ~/.config/portfolio/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging on stderr")

	viper.SetDefault("site.content", types.DefaultContentPath)
	viper.SetDefault("site.dist_dir", types.DefaultDistDir)
	viper.SetDefault("verify.timeout", types.DefaultBuildTimeout.String())
	viper.SetDefault("history.dir", types.DefaultHistoryDir)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("portfolio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "portfolio"))
		}
	}

	viper.SetEnvPrefix("PORTFOLIO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a console logger on stderr. Warnings and above are shown
// by default; verbose enables debug output.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// setting returns the flag value when the flag was set explicitly, and the
// viper key otherwise.
func setting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/portfolio-site/internal/site"
	"github.com/pdiddy/portfolio-site/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the portfolio pages into the output directory",
	Long: `Build reads the site content YAML and renders the about, career,
projects, and contact pages into the output directory. The output directory
is cleared first, so repeated builds produce identical output.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	contentPath := setting(cmd, "content", "site.content")
	distDir := setting(cmd, "dist", "site.dist_dir")

	content, err := site.LoadContent(contentPath)
	if err != nil {
		return err
	}

	logger.Debug("building site", zap.String("content", contentPath), zap.String("dist", distDir))
	_, err = site.Build(content, distDir, cmd.OutOrStdout())
	return err
}

func init() {
	buildCmd.Flags().String("content", types.DefaultContentPath, "site content YAML file")
	buildCmd.Flags().String("dist", types.DefaultDistDir, "output directory")

	rootCmd.AddCommand(buildCmd)
}

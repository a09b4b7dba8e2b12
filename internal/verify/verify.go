// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify builds the site through an external command and checks the
// generated pages against content expectations.
//
// A failed build aborts the run before any page is read. Page checks are
// independent: a missing page or a failed expectation is recorded in the
// report and never stops the remaining checks.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

// ErrPageNotFound is wrapped by LoadPage when the output file does not exist.
var ErrPageNotFound = errors.New("page not found")

// BuildRunner runs the external build command.
type BuildRunner interface {
	Run(ctx context.Context, command []string, dir string) error
}

// LoadPage reads the page at the slash-separated path rel under distDir.
func LoadPage(distDir, rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(distDir, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrPageNotFound, rel)
		}
		return "", fmt.Errorf("reading page %s: %w", rel, err)
	}
	return string(data), nil
}

// Verifier builds the site and checks its pages.
type Verifier struct {
	runner BuildRunner
	cfg    types.VerifyConfig
	log    *zap.Logger

	// Pages is the expectation set; New sets it to DefaultExpectations.
	Pages []PageExpectations
}

// New returns a Verifier using r to run cfg.BuildCommand. Zero-valued
// config fields fall back to defaults.
func New(r BuildRunner, cfg types.VerifyConfig, log *zap.Logger) *Verifier {
	if cfg.DistDir == "" {
		cfg.DistDir = types.DefaultDistDir
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = types.DefaultBuildTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{runner: r, cfg: cfg, log: log, Pages: DefaultExpectations()}
}

// RunBuild invokes the build command and blocks until it exits or the
// configured timeout elapses.
func (v *Verifier) RunBuild(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.Timeout)
	defer cancel()

	v.log.Info("running build", zap.Strings("command", v.cfg.BuildCommand), zap.Duration("timeout", v.cfg.Timeout))
	return v.runner.Run(ctx, v.cfg.BuildCommand, v.cfg.WorkDir)
}

// Run builds the site, then verifies every page. A build failure is
// returned as an error with an empty report.
func (v *Verifier) Run(ctx context.Context) (types.Report, error) {
	if err := v.RunBuild(ctx); err != nil {
		return types.Report{}, err
	}
	return v.VerifyPages(ctx)
}

// VerifyPages checks the pages currently in the output directory without
// building. Pages are checked concurrently; the report keeps page order.
func (v *Verifier) VerifyPages(ctx context.Context) (types.Report, error) {
	report := types.Report{StartedAt: time.Now().UTC()}
	pages := make([]types.PageReport, len(v.Pages))

	g, gctx := errgroup.WithContext(ctx)
	for i, pe := range v.Pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pages[i] = v.verifyPage(pe)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	report.Pages = pages
	report.Duration = time.Since(report.StartedAt)

	v.log.Info("verification finished",
		zap.Int("pages", len(pages)),
		zap.Int("checks", report.CheckCount()),
		zap.Int("failures", len(report.Failures())),
		zap.Duration("elapsed", report.Duration))
	return report, nil
}

func (v *Verifier) verifyPage(pe PageExpectations) types.PageReport {
	html, err := LoadPage(v.cfg.DistDir, pe.Page)
	if err != nil {
		v.log.Warn("page unavailable", zap.String("page", pe.Page), zap.Error(err))
		return types.PageReport{
			Page:  pe.Page,
			Found: false,
			Checks: []types.CheckResult{{
				Page:        pe.Page,
				Expectation: types.Expectation{Description: "page exists", Pattern: pe.Page},
				Error:       err.Error(),
			}},
		}
	}

	checks := Check(pe.Page, html, pe.Expectations)
	for _, c := range checks {
		if !c.Passed {
			v.log.Debug("check failed",
				zap.String("page", c.Page),
				zap.String("expectation", c.Expectation.Description),
				zap.Int("got", c.Got))
		}
	}
	return types.PageReport{Page: pe.Page, Found: true, Checks: checks}
}

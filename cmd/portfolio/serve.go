package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the output directory for local preview",
	Long: `Serve starts an HTTP server over the output directory. Routes such as
/career are served from career/index.html. Run build first.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	distDir := setting(cmd, "dist", "site.dist_dir")
	addr, _ := cmd.Flags().GetString("addr")

	if _, err := os.Stat(filepath.Join(distDir, "index.html")); err != nil {
		return fmt.Errorf("no built site in %s (run build first): %w", distDir, err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newPreviewRouter(distDir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", distDir, addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newPreviewRouter serves distDir, mapping extensionless routes to their
// index.html.
func newPreviewRouter(distDir string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	root := http.Dir(distDir)
	files := http.FileServer(root)

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		p := path.Clean("/" + req.URL.Path)
		if path.Ext(p) == "" {
			page := path.Join(p, "index.html")
			if f, err := root.Open(page); err == nil {
				f.Close()
				http.ServeFile(w, req, filepath.Join(distDir, filepath.FromSlash(strings.TrimPrefix(page, "/"))))
				return
			}
		}
		files.ServeHTTP(w, req)
	})
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}

func init() {
	serveCmd.Flags().String("dist", types.DefaultDistDir, "output directory to serve")
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "listen address")

	rootCmd.AddCommand(serveCmd)
}

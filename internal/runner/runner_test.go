// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// exitError mimics *exec.ExitError's ExitCode method.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e *exitError) ExitCode() int { return e.code }

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runFunc       func(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error

	gotName string
	gotArgs []string
	gotDir  string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string, dir string, stdout, stderr io.Writer) error {
	m.gotName, m.gotArgs, m.gotDir = name, args, dir
	if m.runFunc != nil {
		return m.runFunc(ctx, name, args, stdout, stderr)
	}
	return nil
}

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		command      []string
		exec         *mockExecutor
		wantErr      bool
		wantExit     int
		wantStarted  bool
		wantContains string
	}{
		{
			name:    "successful build",
			command: []string{"npm", "run", "build"},
			exec:    &mockExecutor{availableBins: map[string]bool{"npm": true}},
		},
		{
			name:    "non-zero exit",
			command: []string{"npm", "run", "build"},
			exec: &mockExecutor{
				availableBins: map[string]bool{"npm": true},
				runFunc: func(context.Context, string, []string, io.Writer, io.Writer) error {
					return &exitError{code: 2}
				},
			},
			wantErr:      true,
			wantExit:     2,
			wantStarted:  true,
			wantContains: "exited with status 2",
		},
		{
			name:         "binary not on PATH",
			command:      []string{"missing-tool", "build"},
			exec:         &mockExecutor{availableBins: map[string]bool{}},
			wantErr:      true,
			wantExit:     -1,
			wantContains: "locating missing-tool",
		},
		{
			name:    "launch failure without exit code",
			command: []string{"portfolio", "build"},
			exec: &mockExecutor{
				availableBins: map[string]bool{"portfolio": true},
				runFunc: func(context.Context, string, []string, io.Writer, io.Writer) error {
					return errors.New("fork/exec: permission denied")
				},
			},
			wantErr:      true,
			wantExit:     -1,
			wantContains: "permission denied",
		},
		{
			name:         "empty command",
			command:      nil,
			exec:         &mockExecutor{},
			wantErr:      true,
			wantExit:     -1,
			wantContains: "empty build command",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRunner(tt.exec, nil, nil, nil)
			err := r.Run(context.Background(), tt.command, ".")
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("expected *BuildError, got %T (%v)", err, err)
			}
			if be.ExitCode != tt.wantExit {
				t.Errorf("exit code = %d, want %d", be.ExitCode, tt.wantExit)
			}
			if be.Started() != tt.wantStarted {
				t.Errorf("Started() = %v, want %v", be.Started(), tt.wantStarted)
			}
			if !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantContains)
			}
		})
	}
}

func TestRun_PassesArgsAndDir(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"portfolio": true}}
	r := newRunner(exec, nil, nil, nil)

	if err := r.Run(context.Background(), []string{"portfolio", "build", "--dist", "out"}, "/srv/site"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.gotName != "portfolio" {
		t.Errorf("name = %q, want %q", exec.gotName, "portfolio")
	}
	if got := strings.Join(exec.gotArgs, " "); got != "build --dist out" {
		t.Errorf("args = %q, want %q", got, "build --dist out")
	}
	if exec.gotDir != "/srv/site" {
		t.Errorf("dir = %q, want %q", exec.gotDir, "/srv/site")
	}
}

func TestRun_ForwardsOutput(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"portfolio": true},
		runFunc: func(_ context.Context, _ string, _ []string, stdout, stderr io.Writer) error {
			_, _ = io.WriteString(stdout, "wrote dist/index.html\n")
			_, _ = io.WriteString(stderr, "warning: no favicon\n")
			return nil
		},
	}
	var out, errOut bytes.Buffer
	r := newRunner(exec, &out, &errOut, nil)

	if err := r.Run(context.Background(), []string{"portfolio", "build"}, "."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "dist/index.html") {
		t.Errorf("stdout not forwarded: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "no favicon") {
		t.Errorf("stderr not forwarded: %q", errOut.String())
	}
}

func TestRun_Timeout(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"portfolio": true},
		runFunc: func(ctx context.Context, _ string, _ []string, _, _ io.Writer) error {
			<-ctx.Done()
			return &exitError{code: -1}
		},
	}
	r := newRunner(exec, nil, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := r.Run(ctx, []string{"portfolio", "build"}, ".")
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BuildError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded, got %v", err)
	}
	if be.Started() {
		t.Error("timed-out build should not report Started")
	}
}

func TestRun_OSExecutor(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	tests := []struct {
		name        string
		command     []string
		wantErr     bool
		wantExit    int
		wantStarted bool
		wantOut     string
	}{
		{
			name:        "exit zero",
			command:     []string{"sh", "-c", "echo built"},
			wantStarted: true,
			wantOut:     "built",
		},
		{
			name:        "non-zero exit",
			command:     []string{"sh", "-c", "exit 3"},
			wantErr:     true,
			wantExit:    3,
			wantStarted: true,
		},
		{
			name:     "missing binary",
			command:  []string{"portfolio-no-such-binary", "build"},
			wantErr:  true,
			wantExit: exitNotStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := New(&out, nil, nil)

			err := r.Run(context.Background(), tt.command, t.TempDir())
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !strings.Contains(out.String(), tt.wantOut) {
					t.Errorf("stdout = %q, want it to contain %q", out.String(), tt.wantOut)
				}
				return
			}

			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("expected *BuildError, got %v", err)
			}
			if be.ExitCode != tt.wantExit {
				t.Errorf("ExitCode = %d, want %d", be.ExitCode, tt.wantExit)
			}
			if be.Started() != tt.wantStarted {
				t.Errorf("Started() = %v, want %v", be.Started(), tt.wantStarted)
			}
		})
	}
}

func TestRun_OSExecutorUsesDir(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	r := New(nil, nil, nil)
	if err := r.Run(context.Background(), []string{"sh", "-c", "echo ok > marker"}, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Errorf("build did not run in %s: %v", dir, err)
	}
}

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"verso/internal/manager"
	"verso/internal/paths"
)

// run executes the CLI against a temp managed root and returns the
// combined output and error.
func run(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(paths.EnvRoot, root)

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestBinNotInstalled(t *testing.T) {
	_, err := run(t, t.TempDir(), "bin", "1.2.3")
	if !errors.Is(err, manager.ErrNotInstalled) {
		t.Fatalf("bin error = %v, want ErrNotInstalled", err)
	}
}

func TestBinPrintsEntryPoint(t *testing.T) {
	root := t.TempDir()
	entry := filepath.Join(root, "versions", "1.2.3", "bin", "tsc")
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		t.Fatalf("seed layout: %v", err)
	}
	if err := os.WriteFile(entry, []byte("1.2.3"), 0o755); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	out, err := run(t, root, "bin", "v1.2.3")
	if err != nil {
		t.Fatalf("bin: %v", err)
	}
	if strings.TrimSpace(out) != entry {
		t.Fatalf("bin output = %q, want %q", out, entry)
	}
}

func TestRmAbsentVersionSucceeds(t *testing.T) {
	if _, err := run(t, t.TempDir(), "rm", "1.0.0"); err != nil {
		t.Fatalf("rm of absent version: %v", err)
	}
}

func TestRmRejectsInvalidVersion(t *testing.T) {
	if _, err := run(t, t.TempDir(), "rm", "whatever"); err == nil {
		t.Fatal("rm accepted an invalid version token")
	}
}

func TestPrevWithoutHistory(t *testing.T) {
	_, err := run(t, t.TempDir(), "prev")
	if !errors.Is(err, manager.ErrNoPrevious) {
		t.Fatalf("prev error = %v, want ErrNoPrevious", err)
	}
}

func TestPickerRequiresInstalledVersions(t *testing.T) {
	_, err := run(t, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no versions installed") {
		t.Fatalf("bare invocation error = %v, want no-versions message", err)
	}
}

func TestDoctorReportsEmptyRoot(t *testing.T) {
	out, err := run(t, t.TempDir(), "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !strings.Contains(out, "installed: 0") {
		t.Fatalf("doctor output missing install count:\n%s", out)
	}
	if !strings.Contains(out, "active:    none") {
		t.Fatalf("doctor output missing active line:\n%s", out)
	}
}

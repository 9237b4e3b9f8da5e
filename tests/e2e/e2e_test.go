package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func requireGo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go not on PATH")
	}
}

func runMaskgen(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	repoRoot := filepath.Clean(filepath.Join("..", ".."))
	cmd := exec.Command("go", append([]string{"run", "./cmd/maskgen"}, args...)...)
	cmd.Dir = repoRoot
	cmd.Env = os.Environ()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestDefaultBatchMatchesGolden(t *testing.T) {
	requireGo(t)
	stdout, stderr, err := runMaskgen(t)
	if err != nil {
		t.Fatalf("maskgen failed: %v\n%s", err, stderr)
	}
	expected, err := os.ReadFile("default.golden")
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if diff := cmp.Diff(string(expected), stdout); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidMaskExitsWithFailure(t *testing.T) {
	requireGo(t)
	stdout, stderr, err := runMaskgen(t, "expand", "f0f00f0ff0f00f0f", "f0f00f0ff0f00f0?")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected non-zero exit, got %v", err)
	}
	if !strings.Contains(stderr, "unexpected value") {
		t.Fatalf("expected diagnostic on stderr, got %s", stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || lines[1] != "0xf83e007c1ff83e00 0x7c1f" {
		t.Fatalf("expected only the first mask on stdout, got %q", stdout)
	}
}

package check

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"

	"maskgen/internal/diag"
	"maskgen/internal/frontend"
)

func TestCheckAcceptsCurrentTable(t *testing.T) {
	diagStr, res, err := runCheck(t, `package board

const (
	Mask0Source        = "f0f00f0ff0f00f0f"
	Mask0Prefix uint64 = 0xf83e007c1ff83e00
	Mask0Suffix uint16 = 0x7c1f
)

const (
	Mask1Source        = "ff00ff0000ff00ff"
	Mask1Prefix uint64 = 0xffc00ffc00003ff0
	Mask1Suffix uint16 = 0x03ff
)
`)
	if err != nil {
		t.Fatalf("expected success, got error %v with diagnostics %s", err, diagStr)
	}
	if diagStr != "" {
		t.Fatalf("expected no diagnostics, got %q", diagStr)
	}
	if res.Pairs != 2 {
		t.Fatalf("expected 2 pairs, got %d", res.Pairs)
	}
}

func TestCheckRejectsStaleWord(t *testing.T) {
	diagStr, _, err := runCheck(t, `package board

const (
	Mask0Source        = "f0f00f0ff0f00f0f"
	Mask0Prefix uint64 = 0xf83e007c1ff83e01
	Mask0Suffix uint16 = 0x7c1f
)
`)
	if err == nil {
		t.Fatalf("expected stale prefix to fail")
	}
	if !strings.Contains(diagStr, "Mask0Prefix = 0xf83e007c1ff83e01") || !strings.Contains(diagStr, "regenerate") {
		t.Fatalf("expected drift diagnostic, got %q", diagStr)
	}
	if !strings.Contains(diagStr, "masks_gen.go:5:") {
		t.Fatalf("expected position of Mask0Prefix, got %q", diagStr)
	}
}

func TestCheckRejectsWrongType(t *testing.T) {
	diagStr, _, err := runCheck(t, `package board

const (
	Mask0Source = "f0f00f0ff0f00f0f"
	Mask0Prefix = 0xf83e007c1ff83e00
	Mask0Suffix = 0x7c1f
)
`)
	if err == nil {
		t.Fatalf("expected untyped words to fail")
	}
	if !strings.Contains(diagStr, "want uint64") || !strings.Contains(diagStr, "want uint16") {
		t.Fatalf("expected type diagnostics, got %q", diagStr)
	}
}

func TestCheckRejectsInvalidSource(t *testing.T) {
	diagStr, _, err := runCheck(t, `package board

const (
	Mask0Source        = "f0f00f0ff0f00f0x"
	Mask0Prefix uint64 = 0
	Mask0Suffix uint16 = 0
)
`)
	if err == nil {
		t.Fatalf("expected invalid source mask to fail")
	}
	if !strings.Contains(diagStr, "unexpected value") {
		t.Fatalf("expected invalid character diagnostic, got %q", diagStr)
	}
}

func TestCheckRejectsMissingConstants(t *testing.T) {
	diagStr, _, err := runCheck(t, `package board

const Mask0Prefix uint64 = 0xf83e007c1ff83e00

const (
	Mask1Source        = "f0f00f0ff0f00f0f"
	Mask1Prefix uint64 = 0xf83e007c1ff83e00
)
`)
	if err == nil {
		t.Fatalf("expected missing constants to fail")
	}
	if !strings.Contains(diagStr, "Mask0 has no Mask0Source constant") {
		t.Fatalf("expected missing source diagnostic, got %q", diagStr)
	}
	if !strings.Contains(diagStr, "Mask1Source has no Mask1Suffix constant") {
		t.Fatalf("expected missing suffix diagnostic, got %q", diagStr)
	}
}

func TestCheckWarnsOnEmptyPackage(t *testing.T) {
	diagStr, res, err := runCheck(t, "package board\n\nconst Masks = 0\n")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if res.Pairs != 0 {
		t.Fatalf("expected no pairs, got %d", res.Pairs)
	}
	if !strings.Contains(diagStr, "no generated mask constants found") {
		t.Fatalf("expected warning, got %q", diagStr)
	}
}

func TestCheckWarnsOnNonConstantNames(t *testing.T) {
	diagStr, res, err := runCheck(t, `package board

var Mask0Prefix uint64 = 0xf83e007c1ff83e00
`)
	if err != nil {
		t.Fatalf("expected warning only, got %v", err)
	}
	if res.Pairs != 0 {
		t.Fatalf("expected no pairs, got %d", res.Pairs)
	}
	if !strings.Contains(diagStr, "warn: masks_gen.go:3:5: Mask0Prefix is not a constant; skipped") {
		t.Fatalf("expected non-constant warning, got %q", diagStr)
	}
}

func TestCheckCountsOnlyItsOwnIssues(t *testing.T) {
	pkgs, fset := typeCheck(t, `package board

const (
	Mask0Source        = "f0f00f0ff0f00f0f"
	Mask0Prefix uint64 = 0xf83e007c1ff83e00
	Mask0Suffix uint16 = 0x7c1e
)
`)
	reporter := diag.NewReporter(io.Discard, diag.Text)
	reporter.SetFileSet(fset)
	reporter.Errorf("earlier failure")
	_, err := CheckPackages(pkgs, reporter)
	if err == nil || !strings.Contains(err.Error(), "with 1 issue(s)") {
		t.Fatalf("expected a single issue, got %v", err)
	}
	if reporter.ErrorCount() != 2 {
		t.Fatalf("reporter holds %d errors, want 2", reporter.ErrorCount())
	}
}

func TestCheckLoadsPackageFromDisk(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go not on PATH")
	}
	reporter := diag.NewReporter(io.Discard, diag.Text)
	pkgs, _, err := frontend.LoadPackages(frontend.LoadConfig{Dir: filepath.Join("testdata", "good")}, reporter)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	res, err := CheckPackages(pkgs, reporter)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Pairs != 2 {
		t.Fatalf("expected 2 pairs, got %d", res.Pairs)
	}
}

func runCheck(t *testing.T, src string) (string, Result, error) {
	t.Helper()
	pkgs, fset := typeCheck(t, src)
	var buf bytes.Buffer
	reporter := diag.NewReporter(&buf, diag.Text)
	reporter.SetFileSet(fset)
	res, err := CheckPackages(pkgs, reporter)
	return buf.String(), res, err
}

func typeCheck(t *testing.T, src string) ([]*packages.Package, *token.FileSet) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "masks_gen.go", src, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tpkg, err := new(types.Config).Check(file.Name.Name, fset, []*ast.File{file}, nil)
	if err != nil {
		t.Fatalf("type-check: %v", err)
	}
	return []*packages.Package{{
		Name:   tpkg.Name(),
		Fset:   fset,
		Syntax: []*ast.File{file},
		Types:  tpkg,
	}}, fset
}

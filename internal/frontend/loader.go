package frontend

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	gopackages "golang.org/x/tools/go/packages"

	"maskgen/internal/diag"
)

// LoadConfig configures which Go package holds the generated mask table.
type LoadConfig struct {
	// Dir is the package directory. Empty means the working directory.
	Dir string
	// BuildTags are passed to the go command as -tags.
	BuildTags []string
}

// LoadPackages type-checks the package in cfg.Dir. Load errors are sent to
// reporter and turned into a single returned error.
func LoadPackages(cfg LoadConfig, reporter *diag.Reporter) ([]*gopackages.Package, *token.FileSet, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s is not a directory", dir)
	}

	fset := token.NewFileSet()
	loadCfg := &gopackages.Config{
		Mode:  gopackages.NeedName | gopackages.NeedFiles | gopackages.NeedSyntax | gopackages.NeedTypes | gopackages.NeedTypesInfo,
		Dir:   absDir,
		Fset:  fset,
		Env:   os.Environ(),
		Tests: false,
	}
	if flags := buildTagFlag(cfg.BuildTags); len(flags) > 0 {
		loadCfg.BuildFlags = flags
	}

	pkgs, err := gopackages.Load(loadCfg, ".")
	if err != nil {
		return nil, nil, err
	}

	reporter.SetFileSet(fset)

	var hadErrors bool
	for _, pkg := range pkgs {
		for _, loadErr := range pkg.Errors {
			reporter.Errorf("%s: %s", loadErr.Pos, loadErr.Msg)
			hadErrors = true
		}
	}
	if hadErrors {
		return nil, nil, fmt.Errorf("package loading failed")
	}
	if len(pkgs) == 0 {
		return nil, nil, fmt.Errorf("no Go package found in %s", dir)
	}
	return pkgs, fset, nil
}

func buildTagFlag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	joined := strings.Join(tags, ",")
	if joined == "" {
		return nil
	}
	return []string{"-tags=" + joined}
}

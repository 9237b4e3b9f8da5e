package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"maskgen/internal/check"
	"maskgen/internal/diag"
	"maskgen/internal/emit"
	"maskgen/internal/frontend"
	"maskgen/internal/mask"
	"maskgen/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		reporter := diag.NewReporter(os.Stderr, diag.Text)
		reporter.Errorf("%v", err)
		_ = reporter.Sync()
		os.Exit(1)
	}
}

// run with no arguments expands the built-in masks and prints them as text.
func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return report.Batch(stdout, report.Text, mask.DefaultMasks)
	}

	switch args[0] {
	case "expand":
		return runExpand(args[1:], stdout, stderr)
	case "gen":
		return runGen(args[1:], stdout, stderr)
	case "check":
		return runCheck(args[1:], stderr)
	case "help", "-h", "--help":
		printGlobalUsage(stdout)
		return nil
	default:
		printGlobalUsage(stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func runExpand(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("expand", flag.ContinueOnError)
	fs.SetOutput(stderr)

	format := fs.String("format", "text", "output format (text|json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}
	return report.Batch(stdout, f, masksOrDefault(fs.Args()))
}

func runGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	lang := fs.String("lang", "go", "output language (go|cpp)")
	pkg := fs.String("pkg", "masks", "package name of the generated Go file")
	output := fs.String("o", "", "output file path (stdout when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	l, err := emit.ParseLang(*lang)
	if err != nil {
		return err
	}

	exps, err := mask.ExpandAll(masksOrDefault(fs.Args()))
	if err != nil {
		return err
	}
	src, err := emit.Render(exps, emit.Options{Lang: l, Package: *pkg, Filename: *output})
	if err != nil {
		return err
	}
	return withOutputWriter(*output, stdout, func(w io.Writer) error {
		_, err := w.Write(src)
		return err
	})
}

func runCheck(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	diagFormat := fs.String("diag-format", "text", "diagnostic output format (text|json)")
	tags := fs.String("tags", "", "comma-separated build tags used when loading the package")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check requires exactly one package directory")
	}
	f, err := diag.ParseFormat(*diagFormat)
	if err != nil {
		return err
	}

	reporter := diag.NewReporter(stderr, f)
	defer reporter.Sync()

	cfg := frontend.LoadConfig{Dir: fs.Arg(0), BuildTags: splitTags(*tags)}
	pkgs, _, err := frontend.LoadPackages(cfg, reporter)
	if err != nil {
		return err
	}
	res, err := check.CheckPackages(pkgs, reporter)
	if err != nil {
		return err
	}
	reporter.Infof("%d mask pair(s) up to date", res.Pairs)
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func masksOrDefault(args []string) []string {
	if len(args) == 0 {
		return mask.DefaultMasks
	}
	return args
}

func printGlobalUsage(w io.Writer) {
	fmt.Fprintf(w, "maskgen expands 'f'/'0' tile masks into 64+16-bit board words\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  maskgen                     print the built-in masks\n")
	fmt.Fprintf(w, "  maskgen <command> [options]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  expand    Print binary and hex halves for the given masks\n")
	fmt.Fprintf(w, "  gen       Write a Go or C++ constant table for the given masks\n")
	fmt.Fprintf(w, "  check     Verify a generated Go table against its source masks\n")
}

func withOutputWriter(path string, stdout io.Writer, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = fn(f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	return err
}

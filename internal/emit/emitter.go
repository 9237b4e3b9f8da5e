package emit

import (
	"bytes"
	"fmt"
	"go/token"
	"io"

	"golang.org/x/tools/imports"

	"maskgen/internal/mask"
)

// Lang selects the target language of the constant table.
type Lang string

const (
	Go  Lang = "go"
	Cpp Lang = "cpp"
)

// Header is the first line of every generated file.
const Header = "// Code generated by maskgen. DO NOT EDIT."

// Options configures table generation.
type Options struct {
	Lang Lang
	// Package names the Go package. Ignored for C++.
	Package string
	// Filename is passed to the Go formatter for error messages.
	Filename string
}

// Render returns the constant table for exps. Every expansion must come from
// a 16-character board mask so its halves fit the 64/16-bit words.
func Render(exps []mask.Expansion, opts Options) ([]byte, error) {
	words := make([]mask.Words, len(exps))
	for i, exp := range exps {
		w, err := exp.Words()
		if err != nil {
			return nil, fmt.Errorf("emit: mask %d: %w", i, err)
		}
		words[i] = w
	}

	var buf bytes.Buffer
	pr := &printer{w: &buf, exps: exps, words: words}
	switch opts.Lang {
	case Go, "":
		pkg := opts.Package
		if pkg == "" {
			pkg = "masks"
		}
		if !token.IsIdentifier(pkg) {
			return nil, fmt.Errorf("emit: invalid package name %q", pkg)
		}
		pr.emitGo(pkg)
		filename := opts.Filename
		if filename == "" {
			filename = "masks_gen.go"
		}
		out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		})
		if err != nil {
			return nil, fmt.Errorf("emit: format generated source: %w", err)
		}
		return out, nil
	case Cpp:
		pr.emitCpp()
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("emit: unknown language: %s", opts.Lang)
	}
}

// ParseLang validates a -lang flag value.
func ParseLang(s string) (Lang, error) {
	switch Lang(s) {
	case Go, Cpp:
		return Lang(s), nil
	default:
		return "", fmt.Errorf("unknown language: %s", s)
	}
}

type printer struct {
	w     io.Writer
	exps  []mask.Expansion
	words []mask.Words
}

func (p *printer) emitGo(pkg string) {
	fmt.Fprintln(p.w, Header)
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "package %s\n", pkg)
	for i, exp := range p.exps {
		fmt.Fprintln(p.w)
		fmt.Fprintf(p.w, "// Mask%d selects the tiles of %q.\n", i, exp.Mask)
		fmt.Fprintln(p.w, "const (")
		fmt.Fprintf(p.w, "\t%s = %q\n", ConstName(i, SourceSuffix), exp.Mask)
		fmt.Fprintf(p.w, "\t%s uint64 = %#016x\n", ConstName(i, PrefixSuffix), p.words[i].Prefix)
		fmt.Fprintf(p.w, "\t%s uint16 = %#04x\n", ConstName(i, SuffixSuffix), p.words[i].Suffix)
		fmt.Fprintln(p.w, ")")
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "// Masks lists every pair in generation order.")
	fmt.Fprintln(p.w, "var Masks = [...]struct {")
	fmt.Fprintln(p.w, "\tPrefix uint64")
	fmt.Fprintln(p.w, "\tSuffix uint16")
	fmt.Fprintln(p.w, "}{")
	for i := range p.exps {
		fmt.Fprintf(p.w, "\t{%s, %s},\n", ConstName(i, PrefixSuffix), ConstName(i, SuffixSuffix))
	}
	fmt.Fprintln(p.w, "}")
}

func (p *printer) emitCpp() {
	fmt.Fprintln(p.w, Header)
	fmt.Fprintln(p.w, "#pragma once")
	fmt.Fprintln(p.w, "#include <cstdint>")
	for i, exp := range p.exps {
		fmt.Fprintln(p.w)
		fmt.Fprintf(p.w, "// %s\n", exp.Mask)
		fmt.Fprintf(p.w, "static const uint64_t mask%d_prefix = %#016xULL;\n", i, p.words[i].Prefix)
		fmt.Fprintf(p.w, "static const uint16_t mask%d_suffix = %#04x;\n", i, p.words[i].Suffix)
	}
}

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"maskgen/internal/mask"
)

// Format selects how expansions are rendered.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// ParseFormat validates a -format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Text, JSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Write renders a single expansion. Text output is two lines: the binary
// halves, then their hex values. JSON output is one object per line so
// records already written survive a later failure in the batch.
func Write(w io.Writer, format Format, exp mask.Expansion) error {
	switch format {
	case Text, "":
		return writeText(w, exp)
	case JSON:
		return json.NewEncoder(w).Encode(newRecord(exp))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func writeText(w io.Writer, exp mask.Expansion) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", exp.Prefix, exp.Suffix); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", exp.PrefixHex(), exp.SuffixHex())
	return err
}

type record struct {
	Mask      string `json:"mask"`
	Bits      string `json:"bits"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	PrefixHex string `json:"prefix_hex"`
	SuffixHex string `json:"suffix_hex"`
}

func newRecord(exp mask.Expansion) record {
	return record{
		Mask:      exp.Mask,
		Bits:      exp.Bits,
		Prefix:    exp.Prefix,
		Suffix:    exp.Suffix,
		PrefixHex: exp.PrefixHex(),
		SuffixHex: exp.SuffixHex(),
	}
}

// Batch expands masks in order and writes each one before moving to the
// next. The first invalid mask stops the batch; nothing is written for it.
func Batch(w io.Writer, format Format, masks []string) error {
	for i, m := range masks {
		exp, err := mask.Expand(m)
		if err != nil {
			return fmt.Errorf("mask %d: %w", i, err)
		}
		if err := Write(w, format, exp); err != nil {
			return err
		}
	}
	return nil
}

package mask

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// RunWidth is the number of bits each mask character expands to.
	RunWidth = 5
	// PrefixBits is the fixed split point between the prefix and suffix halves.
	PrefixBits = 64
	// BoardLength is the mask length of a full 16-tile board (80 bits).
	BoardLength = 16

	setRun   = "11111"
	clearRun = "00000"
)

var (
	// ErrInvalidMaskCharacter is returned when a mask holds anything other
	// than 'f' or '0'.
	ErrInvalidMaskCharacter = errors.New("invalid mask character")
	// ErrShortMask is returned when the expansion leaves one half empty.
	ErrShortMask = errors.New("mask too short to split")
	// ErrNotBoardMask is returned when packing a mask that is not BoardLength long.
	ErrNotBoardMask = errors.New("mask is not a 16-tile board mask")
)

// CharError records where an invalid character was found.
type CharError struct {
	Mask   string
	Offset int
	Char   rune
}

func (e *CharError) Error() string {
	return fmt.Sprintf("mask %q: unexpected value %q at offset %d", e.Mask, e.Char, e.Offset)
}

func (e *CharError) Unwrap() error {
	return ErrInvalidMaskCharacter
}

// Expansion holds a mask and its expanded bit string split at PrefixBits.
type Expansion struct {
	Mask   string
	Bits   string
	Prefix string
	Suffix string
}

// Words is the packed board form of an expansion.
type Words struct {
	Prefix uint64
	Suffix uint16
}

// Expand maps every mask character to a RunWidth run of ones ('f') or zeros
// ('0') and splits the result at PrefixBits.
func Expand(mask string) (Expansion, error) {
	var b strings.Builder
	b.Grow(len(mask) * RunWidth)
	for i, c := range mask {
		switch c {
		case 'f':
			b.WriteString(setRun)
		case '0':
			b.WriteString(clearRun)
		default:
			return Expansion{}, &CharError{Mask: mask, Offset: i, Char: c}
		}
	}
	bits := b.String()
	if len(bits) <= PrefixBits {
		return Expansion{}, fmt.Errorf("%w: %q expands to %d bits", ErrShortMask, mask, len(bits))
	}
	return Expansion{
		Mask:   mask,
		Bits:   bits,
		Prefix: bits[:PrefixBits],
		Suffix: bits[PrefixBits:],
	}, nil
}

// ExpandAll expands masks in order and stops at the first failure. The
// expansions completed before the failure are returned alongside the error.
func ExpandAll(masks []string) ([]Expansion, error) {
	out := make([]Expansion, 0, len(masks))
	for _, m := range masks {
		exp, err := Expand(m)
		if err != nil {
			return out, err
		}
		out = append(out, exp)
	}
	return out, nil
}

// PrefixHex renders the prefix as a 0x-prefixed lowercase hex literal.
func (e Expansion) PrefixHex() string {
	return hexOf(e.Prefix)
}

// SuffixHex renders the suffix as a 0x-prefixed lowercase hex literal.
func (e Expansion) SuffixHex() string {
	return hexOf(e.Suffix)
}

// Words packs the halves into their board words.
func (e Expansion) Words() (Words, error) {
	if len(e.Mask) != BoardLength {
		return Words{}, fmt.Errorf("%w: %q has %d characters", ErrNotBoardMask, e.Mask, len(e.Mask))
	}
	return Words{
		Prefix: parseBinary(e.Prefix).Uint64(),
		Suffix: uint16(parseBinary(e.Suffix).Uint64()),
	}, nil
}

func hexOf(bits string) string {
	return "0x" + parseBinary(bits).Text(16)
}

// parseBinary only sees strings built by Expand, so the digits are always valid.
func parseBinary(bits string) *big.Int {
	n, ok := new(big.Int).SetString(bits, 2)
	if !ok {
		panic(fmt.Sprintf("mask: malformed bit string %q", bits))
	}
	return n
}

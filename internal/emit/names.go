package emit

import (
	"fmt"
	"regexp"
	"strconv"
)

// Name suffixes of the generated constants.
const (
	SourceSuffix = "Source"
	PrefixSuffix = "Prefix"
	SuffixSuffix = "Suffix"
)

var constNameRE = regexp.MustCompile(`^Mask(\d+)(Source|Prefix|Suffix)$`)

// ConstName returns the generated constant name for mask i.
func ConstName(i int, suffix string) string {
	return fmt.Sprintf("Mask%d%s", i, suffix)
}

// ParseConstName splits a generated constant name into its index and suffix.
func ParseConstName(name string) (int, string, bool) {
	m := constNameRE.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	i, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return i, m[2], true
}

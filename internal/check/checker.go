package check

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"

	"maskgen/internal/diag"
	"maskgen/internal/emit"
	"maskgen/internal/mask"
)

// Result summarises a successful check.
type Result struct {
	// Pairs is the number of prefix/suffix pairs that matched their source mask.
	Pairs int
}

// CheckPackages verifies that every MaskN{Source,Prefix,Suffix} constant group
// declared at package level still equals the expansion of its source mask.
func CheckPackages(pkgs []*packages.Package, reporter *diag.Reporter) (Result, error) {
	if reporter == nil {
		return Result{}, fmt.Errorf("no reporter provided for check")
	}
	before := reporter.ErrorCount()
	c := &checker{reporter: reporter}
	for _, pkg := range pkgs {
		if pkg == nil || pkg.Types == nil {
			continue
		}
		c.checkScope(pkg.Types.Scope())
	}
	if issues := reporter.ErrorCount() - before; issues > 0 {
		return Result{}, fmt.Errorf("check failed with %d issue(s)", issues)
	}
	if c.pairs == 0 {
		reporter.Warnf("no generated mask constants found")
	}
	return Result{Pairs: c.pairs}, nil
}

type checker struct {
	reporter *diag.Reporter
	pairs    int
}

type group struct {
	source *types.Const
	prefix *types.Const
	suffix *types.Const
}

func (c *checker) checkScope(scope *types.Scope) {
	groups := make(map[int]*group)
	for _, name := range scope.Names() {
		i, suffix, ok := emit.ParseConstName(name)
		if !ok {
			continue
		}
		obj, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			c.reporter.Warn(scope.Lookup(name).Pos(), fmt.Sprintf("%s is not a constant; skipped", name))
			continue
		}
		g := groups[i]
		if g == nil {
			g = &group{}
			groups[i] = g
		}
		switch suffix {
		case emit.SourceSuffix:
			g.source = obj
		case emit.PrefixSuffix:
			g.prefix = obj
		case emit.SuffixSuffix:
			g.suffix = obj
		}
	}

	indices := make([]int, 0, len(groups))
	for i := range groups {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		c.checkGroup(i, groups[i])
	}
}

func (c *checker) checkGroup(i int, g *group) {
	if g.source == nil {
		c.error(g.anyPos(), "%s has no %s constant", groupLabel(i), emit.ConstName(i, emit.SourceSuffix))
		return
	}
	if g.source.Val().Kind() != constant.String {
		c.error(g.source.Pos(), "%s must be a string constant", g.source.Name())
		return
	}
	src := constant.StringVal(g.source.Val())
	exp, err := mask.Expand(src)
	if err != nil {
		c.error(g.source.Pos(), "%s: %v", g.source.Name(), err)
		return
	}
	words, err := exp.Words()
	if err != nil {
		c.error(g.source.Pos(), "%s: %v", g.source.Name(), err)
		return
	}

	ok := c.checkWord(i, g.source, g.prefix, emit.PrefixSuffix, types.Uint64, words.Prefix)
	ok = c.checkWord(i, g.source, g.suffix, emit.SuffixSuffix, types.Uint16, uint64(words.Suffix)) && ok
	if ok {
		c.pairs++
	}
}

func (c *checker) checkWord(i int, source, obj *types.Const, suffix string, kind types.BasicKind, want uint64) bool {
	if obj == nil {
		c.error(source.Pos(), "%s has no %s constant", source.Name(), emit.ConstName(i, suffix))
		return false
	}
	if !types.Identical(obj.Type(), types.Typ[kind]) {
		c.error(obj.Pos(), "%s has type %s, want %s", obj.Name(), obj.Type(), types.Typ[kind])
		return false
	}
	got, exact := constant.Uint64Val(obj.Val())
	if !exact {
		c.error(obj.Pos(), "%s is not an unsigned integer constant", obj.Name())
		return false
	}
	if got != want {
		c.error(obj.Pos(), "%s = %#x, but %q expands to %#x; regenerate the table", obj.Name(), got, constant.StringVal(source.Val()), want)
		return false
	}
	return true
}

func (c *checker) error(pos token.Pos, format string, args ...any) {
	c.reporter.Error(pos, fmt.Sprintf(format, args...))
}

func (g *group) anyPos() token.Pos {
	for _, obj := range []*types.Const{g.prefix, g.suffix} {
		if obj != nil {
			return obj.Pos()
		}
	}
	return token.NoPos
}

func groupLabel(i int) string {
	return fmt.Sprintf("Mask%d", i)
}

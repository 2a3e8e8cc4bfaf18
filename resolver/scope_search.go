package resolver

import (
	"github.com/phildawes/racer/chunker"
	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
	"github.com/phildawes/racer/scopes"
)

// searchBlockStatements runs the Statement Iterator over
// masked[bodyStart:bodyEnd] and applies the Matcher to every statement
// blob, namespace- and name-filtering the result. Shared by
// local-scope walking, module-member search, trait/impl body search,
// and whole-file search (bodyStart=0, bodyEnd=len(masked)).
func (r *Resolver) searchBlockStatements(file, masked string, bodyStart, bodyEnd int, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	var out []core.Match
	for _, stmt := range chunker.Statements(masked[bodyStart:bodyEnd]) {
		absStart := bodyStart + stmt.Start
		absEnd := bodyStart + stmt.End
		blob := masked[absStart:absEnd]

		// A blob that provably can't contain name as a standalone
		// identifier can skip the more expensive shape matchers below.
		if name != "" && !matchers.TxtMatches(stype, name, blob) {
			continue
		}

		var candidates []core.Match
		candidates = append(candidates, matchers.Matches(file, absStart, blob)...)
		candidates = append(candidates, matchers.LetBindings(file, absStart, blob)...)
		candidates = append(candidates, matchers.ForBindings(file, absStart, blob)...)

		out = append(out, filterNamespaceAndName(candidates, name, stype, ns)...)
	}
	return out
}

// searchWholeFile searches every top-level statement of file — used
// for module files, crate roots, and the prelude, where there is no
// enclosing point, just the whole source.
func (r *Resolver) searchWholeFile(file, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	src := r.load(file)
	if src.Missing {
		return nil
	}
	masked := src.MaskedString()
	return r.searchBlockStatements(file, masked, 0, len(masked), name, stype, ns)
}

// searchLocalScopes walks every block enclosing origin.Point, innermost
// first, searching each block's statements and the parameter list of
// its enclosing fn/closure signature. For ExactMatch, the first block
// that yields anything wins outright — the closest enclosing
// definition shadows outer ones.
func (r *Resolver) searchLocalScopes(name string, origin core.Scope, stype core.SearchType, ns core.Namespace) []core.Match {
	src := r.load(origin.File)
	if src.Missing {
		return nil
	}
	masked := src.MaskedString()

	blocks := scopes.EnclosingBlocks(masked, origin.Point)

	var out []core.Match
	for _, b := range blocks {
		var blockMatches []core.Match

		// EnclosingFnParamLists is queried one block at a time: it
		// only returns an entry for blocks whose immediately preceding
		// statement is a fn/closure signature, so indexing its result
		// in lockstep with blocks would misalign past the first block
		// that has none (an `if`/`for`/`match` body, say).
		if pl := scopes.EnclosingFnParamLists(masked, []scopes.Block{b}); len(pl) == 1 {
			if pl[0].End-pl[0].Start >= 2 {
				inner := masked[pl[0].Start+1 : pl[0].End-1]
				params := matchers.ParamBindings(origin.File, pl[0].Start+1, inner)
				blockMatches = append(blockMatches, filterNamespaceAndName(params, name, stype, ns)...)
			}
		}

		blockMatches = append(blockMatches, r.searchBlockStatements(origin.File, masked, b.BodyStart, b.BodyEnd, name, stype, ns)...)

		out = append(out, blockMatches...)
		if stype == core.ExactMatch && len(blockMatches) > 0 {
			return out
		}
	}
	return out
}

func filterNamespaceAndName(cands []core.Match, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	var out []core.Match
	for _, c := range cands {
		if !ns.Admits(c.Kind.Namespace()) {
			continue
		}
		if !matchers.SymbolMatches(stype, name, c.Name) {
			continue
		}
		out = append(out, c)
	}
	return out
}

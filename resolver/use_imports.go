package resolver

import (
	"github.com/phildawes/racer/chunker"
	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
	"github.com/phildawes/racer/scopes"
)

// searchUseImports follows `use` declarations visible from origin:
// every `use` statement in each enclosing block is expanded into its
// leaf arrows, and arrows whose local name matches are chased by
// recursively resolving their target path in the importing scope,
// under recursion-guard protection.
func (r *Resolver) searchUseImports(name string, origin core.Scope, stype core.SearchType, ns core.Namespace) []core.Match {
	src := r.load(origin.File)
	if src.Missing {
		return nil
	}
	masked := src.MaskedString()
	blocks := scopes.EnclosingBlocks(masked, origin.Point)

	var out []core.Match
	for _, b := range blocks {
		for _, stmt := range chunker.Statements(masked[b.BodyStart:b.BodyEnd]) {
			absStart := b.BodyStart + stmt.Start
			absEnd := b.BodyStart + stmt.End
			blob := masked[absStart:absEnd]

			importScope := core.Scope{File: origin.File, Point: absStart}
			for _, arrow := range matchers.ParseUse(origin.File, absStart, blob, importScope) {
				out = append(out, r.followUseArrow(arrow, name, stype, ns)...)
			}
		}
	}
	return out
}

func (r *Resolver) followUseArrow(arrow core.UseArrow, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	if arrow.Name == "*" {
		return r.followGlobImport(arrow, name, stype, ns)
	}
	if !matchers.SymbolMatches(stype, name, arrow.Name) {
		return nil
	}
	if r.Sess.Enter(arrow.Target, arrow.ImportScope) {
		return nil
	}
	defer r.Sess.Exit(arrow.Target, arrow.ImportScope)

	targets := r.ResolvePath(arrow.Target, arrow.ImportScope, core.ExactMatch, ns)
	out := make([]core.Match, len(targets))
	for i, t := range targets {
		t.Name = arrow.Name
		out[i] = t
	}
	return out
}

// followGlobImport handles `use a::b::*`: the glob's own target names
// a module/crate/type; that container's members are searched directly
// for name, rather than resolving a literal "*" name.
func (r *Resolver) followGlobImport(arrow core.UseArrow, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	if r.Sess.Enter(arrow.Target, arrow.ImportScope) {
		return nil
	}
	defer r.Sess.Exit(arrow.Target, arrow.ImportScope)

	qualified := core.Path{Segments: append(append([]core.PathSegment{}, arrow.Target.Segments...), core.PathSegment{Name: name})}
	return r.ResolvePath(qualified, arrow.ImportScope, stype, ns)
}

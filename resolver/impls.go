package resolver

import (
	"strings"

	"github.com/phildawes/racer/chunker"
	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
	"github.com/phildawes/racer/scopes"
)

// implsForType scans file's top-level statements for `impl [Trait for]
// TypeName { … }` blocks whose self-type is typeName. Restricted to
// one file — multi-file impl search is left as a documented
// limitation, see DESIGN.md.
func (r *Resolver) implsForType(typeName, file string) []core.ImplRecord {
	src := r.load(file)
	if src.Missing {
		return nil
	}
	masked := src.MaskedString()

	var out []core.ImplRecord
	for _, stmt := range chunker.Statements(masked) {
		blob := masked[stmt.Start:stmt.End]
		if rec, ok := matchers.ParseImpl(file, stmt.Start, blob); ok && rec.SelfType == typeName {
			out = append(out, rec)
		}
	}
	return out
}

// IsMethod reports whether fnMatch (a core.KindFunction Match)
// declares a self receiver as its first parameter, i.e. it is callable
// as `receiver.name(...)` rather than only as `Type::name(...)`.
func (r *Resolver) IsMethod(fnMatch core.Match) bool {
	if fnMatch.Kind != core.KindFunction {
		return false
	}
	masked := r.load(fnMatch.File).MaskedString()
	open := strings.IndexByte(masked[fnMatch.Point:], '(')
	if open == -1 {
		return false
	}
	open += fnMatch.Point
	closeIdx := matchParenAt(masked, open)
	if closeIdx == -1 {
		return false
	}
	return matchers.HasSelfReceiver(masked[open+1 : closeIdx])
}

func matchParenAt(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MethodsOf is searchImplsForName exported for the Type Evaluator's
// method-call case. ctx must be a struct/enum/type Match already
// resolved by the caller.
func (r *Resolver) MethodsOf(ctx core.Match, name string, stype core.SearchType) []core.Match {
	return r.searchImplsForName(ctx, name, stype, core.Value)
}

// searchImplsForName enumerates methods and associated consts across
// every impl block of ctx's type, plus — for trait impls — the
// implemented trait's own items, so default trait methods surface.
func (r *Resolver) searchImplsForName(ctx core.Match, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	var out []core.Match
	for _, rec := range r.implsForType(ctx.Name, ctx.File) {
		masked := r.load(rec.File).MaskedString()
		out = append(out, r.searchBlockStatements(rec.File, masked, rec.BodyStart, rec.BodyStart+len(rec.Body), name, stype, ns)...)

		if rec.TraitName == "" {
			continue
		}
		traitOrigin := core.Scope{File: rec.File, Point: rec.BodyStart}
		for _, tm := range r.ResolveName(rec.TraitName, traitOrigin, core.ExactMatch, core.Type) {
			if tm.Kind != core.KindTrait {
				continue
			}
			out = append(out, r.searchTraitBody(tm, name, stype, ns)...)
		}
	}
	return out
}

// searchTraitBody searches a trait's declared items (default methods,
// associated consts/types) and, recursively, its super-traits listed
// in `trait T: U + V`.
func (r *Resolver) searchTraitBody(ctx core.Match, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	masked := r.load(ctx.File).MaskedString()
	bodyStart, bodyEnd, ok := blockBodyAfter(masked, ctx.Point)
	if !ok {
		return nil
	}

	out := r.searchBlockStatements(ctx.File, masked, bodyStart, bodyEnd, name, stype, ns)

	header := masked[ctx.Point : bodyStart-1]
	for _, super := range superTraitNames(header) {
		superOrigin := core.Scope{File: ctx.File, Point: bodyStart}
		superPath := core.SinglePath(super)
		if r.Sess.Enter(superPath, superOrigin) {
			continue
		}
		for _, sm := range r.ResolveName(super, superOrigin, core.ExactMatch, core.Type) {
			if sm.Kind == core.KindTrait {
				out = append(out, r.searchTraitBody(sm, name, stype, ns)...)
			}
		}
		r.Sess.Exit(superPath, superOrigin)
	}
	return out
}

// blockBodyAfter scans forward from point (the name in e.g. `trait
// Foo<T>: Bar {`) for the construct's opening brace, returning its
// body range. A `;` reached first (a trait with no body, or really
// any bodyless item) means there is nothing to search.
func blockBodyAfter(masked string, point int) (bodyStart, bodyEnd int, ok bool) {
	for i := point; i < len(masked); i++ {
		switch masked[i] {
		case '{':
			return i + 1, scopes.ScopeEnd(masked, i+1), true
		case ';':
			return 0, 0, false
		}
	}
	return 0, 0, false
}

// superTraitNames parses the `: Bound1 + Bound2` clause of a trait
// header (the text between the trait's name and its opening `{`),
// stripping a trailing `where` clause. Super-trait recursion does not
// extend to where-clause bounds — see DESIGN.md.
func superTraitNames(header string) []string {
	idx := matchers.FindTopLevelByte(header, ':')
	if idx == -1 {
		return nil
	}
	clause := header[idx+1:]
	if w := strings.Index(clause, "where"); w != -1 {
		clause = clause[:w]
	}
	var out []string
	for _, part := range strings.Split(clause, "+") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if lt := strings.IndexByte(name, '<'); lt != -1 {
			name = name[:lt]
		}
		out = append(out, strings.TrimSpace(name))
	}
	return out
}

package typeeval

import (
	"strings"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
)

// parseTypeExpr parses a Rust type-annotation string (as found after a
// `:` in a let/fn-param, or after `->` in a fn signature) into a Ty,
// resolving named types through the Resolver. The grammar handled
// mirrors Ty's own closed sum: references, tuples, slices/arrays, and
// named paths with generic arguments.
func (e *Evaluator) parseTypeExpr(text string, origin core.Scope) core.Ty {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.UnsupportedTy()
	}

	switch text[0] {
	case '&':
		rest := stripLifetime(strings.TrimSpace(text[1:]))
		rest = strings.TrimPrefix(strings.TrimSpace(rest), "mut ")
		return core.RefPtrTy(e.parseTypeExpr(rest, origin))

	case '(':
		closeIdx := matchDelim(text, 0, '(', ')')
		if closeIdx == -1 {
			return core.UnsupportedTy()
		}
		inner := text[1:closeIdx]
		if strings.TrimSpace(inner) == "" {
			return core.UnsupportedTy() // the unit type ()
		}
		segs := matchers.SplitTopLevel(inner, ',')
		if len(segs) == 1 {
			return e.parseTypeExpr(segs[0].Text, origin) // merely parenthesized
		}
		var elems []core.Ty
		for _, seg := range segs {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			elems = append(elems, e.parseTypeExpr(seg.Text, origin))
		}
		return core.TupleTy(elems)

	case '[':
		closeIdx := matchDelim(text, 0, '[', ']')
		if closeIdx == -1 {
			return core.UnsupportedTy()
		}
		inner := text[1:closeIdx]
		if semi := matchers.FindTopLevelByte(inner, ';'); semi != -1 {
			return core.FixedLengthVecTy(e.parseTypeExpr(inner[:semi], origin), strings.TrimSpace(inner[semi+1:]))
		}
		return core.VecTy(e.parseTypeExpr(inner, origin))
	}

	return e.resolveNamedType(text, origin)
}

// resolveNamedType resolves a (possibly generic, possibly `::`-joined)
// named type, stashing the resolved type's own declared generic
// parameter names alongside the usage site's generic arguments on the
// returned Match so a later substitute() call can do its job.
func (e *Evaluator) resolveNamedType(text string, origin core.Scope) core.Ty {
	name, argsText := splitGenericArgs(text)
	path := buildPath(name)
	if len(path.Segments) == 0 {
		return core.UnsupportedTy()
	}

	var matches []core.Match
	if len(path.Segments) == 1 {
		matches = e.R.ResolveName(path.Segments[0].Name, origin, core.ExactMatch, core.Type)
	} else {
		matches = e.R.ResolvePath(path, origin, core.ExactMatch, core.Type)
	}
	if len(matches) == 0 {
		return core.PathSearchTy(core.PathSearch{Path: path, Scope: origin})
	}
	m := matches[0]

	if argsText != "" {
		m.GenericArgs = genericParamNames(m.Context)
		for _, seg := range matchers.SplitTopLevel(argsText, ',') {
			argPath := buildPath(strings.TrimSpace(seg.Text))
			m.GenericTypes = append(m.GenericTypes, core.PathSearch{Path: argPath, Scope: origin})
		}
	}
	return core.MatchTy(m)
}

// splitGenericArgs splits "Name<A, B>" into ("Name", "A, B"), or
// returns (text, "") when text carries no generic-argument list.
func splitGenericArgs(text string) (name string, argsText string) {
	open := matchers.FindTopLevelByte(text, '<')
	if open == -1 {
		return strings.TrimSpace(text), ""
	}
	closeIdx := matchDelim(text, open, '<', '>')
	if closeIdx == -1 {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:open]), text[open+1 : closeIdx]
}

// buildPath splits a `::`-joined type path into a core.Path, ignoring
// any inline generic arguments on intermediate segments — the common
// shape for a type annotation is generics only on the final segment,
// already peeled off by splitGenericArgs before this is called.
func buildPath(text string) core.Path {
	text = strings.TrimSpace(text)
	global := strings.HasPrefix(text, "::")
	text = strings.TrimPrefix(text, "::")

	var segs []core.PathSegment
	for _, part := range strings.Split(text, "::") {
		name, _ := splitGenericArgs(part)
		if name == "" {
			continue
		}
		segs = append(segs, core.PathSegment{Name: name})
	}
	return core.Path{Global: global, Segments: segs}
}

func stripLifetime(s string) string {
	if strings.HasPrefix(s, "'") {
		if sp := strings.IndexByte(s, ' '); sp != -1 {
			return strings.TrimSpace(s[sp+1:])
		}
	}
	return s
}

func matchDelim(s string, open int, o, c byte) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case o:
			depth++
		case c:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

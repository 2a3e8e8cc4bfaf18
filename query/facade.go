// Package query is the Query Facade: the two public entry points,
// complete_from_file and find_definition, that orchestrate the
// Source Index, Name Resolver, and Type Evaluator behind a single
// call. This is the only layer that speaks (line, column) — every
// package beneath it works in raw byte offsets, and the facade
// translates at the boundary on the way in and out.
// Grounded on nameres.rs's top-level complete_from_file/find_definition
// functions, adapted onto this engine's Resolver/Evaluator split.
package query

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
	"github.com/phildawes/racer/resolver"
	"github.com/phildawes/racer/typeeval"
)

// Facade ties a Resolver and an Evaluator over the same Session to the
// two public query operations.
type Facade struct {
	R   *resolver.Resolver
	Eva *typeeval.Evaluator
	Log *slog.Logger
}

// New builds a Facade. log may be nil, in which case slog.Default() is
// used.
func New(r *resolver.Resolver, e *typeeval.Evaluator, log *slog.Logger) *Facade {
	if log == nil {
		log = slog.Default()
	}
	return &Facade{R: r, Eva: e, Log: log}
}

// CompleteFromFile resolves the completions available at (line,
// column) in file. line and column are both 0-based, following
// srcindex.Coords; the facade translates them to a byte point via the
// Source Index before doing anything else, and fills in each result's
// Coords before returning. A parser crash or unexpected panic anywhere
// in the resolver subtree is caught here and reported as zero
// completions, never propagated.
func (f *Facade) CompleteFromFile(file string, line, column int) (matches []core.Match) {
	defer func() {
		if rec := recover(); rec != nil {
			f.Log.Debug("query: recovered panic in CompleteFromFile", "file", file, "panic", rec)
			matches = nil
		}
	}()

	idx := f.R.Sess.Index.Load(file)
	masked := idx.MaskedString()
	point := clampPoint(idx.CoordsToPoint(line, column), len(masked))
	start, prefix := extractIdentPrefix(masked, point)
	origin := core.Scope{File: file, Point: start}

	var out []core.Match
	switch {
	case start > 0 && masked[start-1] == '.':
		out = f.completeMember(file, masked, start-1, prefix, origin)
	case start >= 2 && masked[start-2:start] == "::":
		out = f.completePath(masked, start-2, prefix, origin)
	default:
		out = f.R.ResolveName(prefix, origin, core.StartsWith, core.Both)
	}
	return f.fillCoords(dedup(out))
}

// FindDefinition resolves the definition of the identifier at (line,
// column) in file: the same identifier extraction as
// CompleteFromFile, then an ExactMatch lookup (member/path/free),
// returning only the first result with its Coords filled in.
func (f *Facade) FindDefinition(file string, line, column int) (result *core.Match) {
	defer func() {
		if rec := recover(); rec != nil {
			f.Log.Debug("query: recovered panic in FindDefinition", "file", file, "panic", rec)
			result = nil
		}
	}()

	idx := f.R.Sess.Index.Load(file)
	masked := idx.MaskedString()
	point := clampPoint(idx.CoordsToPoint(line, column), len(masked))
	start, name := extractIdentPrefix(masked, point)
	origin := core.Scope{File: file, Point: start}

	var out []core.Match
	switch {
	case start > 0 && masked[start-1] == '.':
		out = f.completeMember(file, masked, start-1, name, origin)
	case start >= 2 && masked[start-2:start] == "::":
		out = f.completePath(masked, start-2, name, origin)
	default:
		out = f.R.ResolveName(name, origin, core.ExactMatch, core.Both)
	}
	// The member and path helpers search by prefix; keep exact names only.
	exact := out[:0]
	for _, m := range out {
		if m.Name == name {
			exact = append(exact, m)
		}
	}
	out = exact
	if len(out) == 0 {
		return nil
	}
	m := f.fillCoords(out[:1])[0]
	return &m
}

// fillCoords populates each match's Coords via its own file's Source
// Index — a find_definition result commonly lives in a file other
// than the one the query originated in, so coordinate translation
// must load that match's own file rather than reuse the caller's.
func (f *Facade) fillCoords(matches []core.Match) []core.Match {
	for i, m := range matches {
		line, column := f.R.Sess.Index.Load(m.File).PointToCoords(m.Point)
		matches[i] = m.WithCoords(core.Coords{Line: line, Column: column})
	}
	return matches
}

// completeMember evaluates the receiver expression (the statement text
// up to dotPos) and enumerates the resulting type's fields and
// methods, filtered by prefix.
func (f *Facade) completeMember(file, masked string, dotPos int, prefix string, origin core.Scope) []core.Match {
	exprStart := statementStartBefore(masked, dotPos)
	receiver := strings.TrimSpace(masked[exprStart:dotPos])
	if receiver == "" {
		return nil
	}
	ty := f.Eva.Eval(receiver, core.Scope{File: file, Point: exprStart}).Deref()
	if ty.Kind != core.TyMatch || ty.Match == nil {
		return nil
	}
	var out []core.Match
	out = append(out, f.R.StructFieldsOf(*ty.Match, prefix, core.StartsWith)...)
	out = append(out, f.R.MethodsOf(*ty.Match, prefix, core.StartsWith)...)
	return out
}

// completePath splits the text up to the `::` into a path, resolves
// all-but-last with ExactMatch (ResolvePath already does this), and
// lets the last segment search by prefix.
func (f *Facade) completePath(masked string, colonPos int, lastSeg string, origin core.Scope) []core.Match {
	pathStart := pathStartBefore(masked, colonPos)
	headText := strings.TrimSpace(masked[pathStart:colonPos])
	if headText == "" {
		return nil
	}
	path := splitPath(headText)
	path.Segments = append(path.Segments, core.PathSegment{Name: lastSeg})
	return f.R.ResolvePath(path, origin, core.StartsWith, core.Both)
}

func splitPath(text string) core.Path {
	global := strings.HasPrefix(text, "::")
	text = strings.TrimPrefix(text, "::")
	var segs []core.PathSegment
	for _, part := range strings.Split(text, "::") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		segs = append(segs, core.PathSegment{Name: name})
	}
	return core.Path{Global: global, Segments: segs}
}

// extractIdentPrefix expands backward from point over a maximal run of
// identifier characters.
func extractIdentPrefix(src string, point int) (start int, prefix string) {
	start = point
	for start > 0 {
		r, size := lastRuneAt(src, start)
		if size == 0 || !matchers.IsIdentChar(r) {
			break
		}
		start -= size
	}
	return start, src[start:point]
}

func lastRuneAt(s string, end int) (rune, int) {
	if end == 0 {
		return 0, 0
	}
	r, size := utf8.DecodeLastRuneInString(s[:end])
	return r, size
}

// pathStartBefore expands backward from point over a maximal run of
// `::`/`.`-joined path characters, isolating just the contiguous
// path/member-chain text immediately before a `::` — narrower than
// statementStartBefore, which would also sweep in irrelevant tokens
// earlier in the same statement (e.g. a preceding `let foo: `).
func pathStartBefore(masked string, point int) int {
	start := point
	for start > 0 {
		r, size := lastRuneAt(masked, start)
		if size == 0 || !matchers.IsPathChar(r) {
			break
		}
		start -= size
	}
	return start
}

// statementStartBefore finds the start of the statement containing
// point, used to bound a receiver expression's text — "text from the
// start of the statement".
func statementStartBefore(masked string, point int) int {
	depth := 0
	for i := point - 1; i >= 0; i-- {
		switch masked[i] {
		case '}', ')', ']':
			depth++
		case '{':
			if depth == 0 {
				return i + 1
			}
			depth--
		case '(', '[':
			if depth == 0 {
				return i + 1
			}
			depth--
		case ';':
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

func clampPoint(point, length int) int {
	if point < 0 {
		return 0
	}
	if point > length {
		return length
	}
	return point
}

// dedup removes matches sharing (file, point, name, kind), keeping the
// first occurrence.
func dedup(matches []core.Match) []core.Match {
	seen := make(map[core.Key]bool, len(matches))
	out := make([]core.Match, 0, len(matches))
	for _, m := range matches {
		key := m.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// Package resolver is the Name Resolver: it composes the Scope
// Walker, Statement Iterator, and Matcher into resolve_name and
// resolve_path, searching primitives, local scopes, use imports,
// module members, the prelude, the crate root, and external crates in
// priority order, with a filesystem-name fallback for completion.
// Grounded on nameres.rs's resolve_path/resolve_name/search_for_impls.
package resolver

import (
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/manifest"
	"github.com/phildawes/racer/scopes"
	"github.com/phildawes/racer/session"
	"github.com/phildawes/racer/srcindex"
)

// Resolver ties a Session's caches to the Manifest Reader collaborator
// and the configured standard-library search path.
type Resolver struct {
	Sess         *session.Session
	Manifest     manifest.Reader
	RustSrcPaths []string
	Log          *slog.Logger
}

// New builds a Resolver. log may be nil, in which case slog.Default()
// is used.
func New(sess *session.Session, m manifest.Reader, rustSrcPaths []string, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{Sess: sess, Manifest: m, RustSrcPaths: rustSrcPaths, Log: log}
}

func (r *Resolver) load(file string) *srcindex.IndexedSource {
	return r.Sess.Index.Load(file)
}

// ResolveName consults each name source in priority order: for
// ExactMatch the first source that yields anything wins, for
// StartsWith every source's results are merged, in search order.
func (r *Resolver) ResolveName(name string, origin core.Scope, stype core.SearchType, ns core.Namespace) []core.Match {
	var out []core.Match

	appendStage := func(stage []core.Match) bool {
		out = append(out, stage...)
		return stype == core.ExactMatch && len(stage) > 0
	}

	if appendStage(searchPrimitives(name, stype, ns)) {
		return out
	}
	if appendStage(r.searchLocalScopes(name, origin, stype, ns)) {
		return out
	}
	if appendStage(r.searchUseImports(name, origin, stype, ns)) {
		return out
	}
	if appendStage(r.searchModuleMembers(name, origin, stype, ns)) {
		return out
	}
	if appendStage(r.searchPrelude(name, stype, ns)) {
		return out
	}
	if appendStage(r.searchCrateRoot(name, origin, stype, ns)) {
		return out
	}

	if stype == core.StartsWith {
		out = append(out, r.searchFilesystemNames(name, origin)...)
	}
	return out
}

// searchModuleMembers covers sibling declarations in sibling files:
// module-level `mod foo;` statements visible from
// origin resolve to their own file, whose top level is then searched.
// Same-file siblings are already reached by searchLocalScopes's
// outermost (whole-file) block, so this only chases cross-file `mod`.
func (r *Resolver) searchModuleMembers(name string, origin core.Scope, stype core.SearchType, ns core.Namespace) []core.Match {
	if !ns.Admits(core.Type) && !ns.Admits(core.Value) {
		return nil
	}
	mods := r.searchLocalScopes("", origin, core.StartsWith, core.Type)
	var out []core.Match
	for _, m := range mods {
		if m.Kind != core.KindModule {
			continue
		}
		file, bodyStart, bodyEnd, sameFile, ok := r.moduleBody(m)
		if !ok || sameFile {
			continue
		}
		if bodyStart == 0 && bodyEnd == 0 {
			out = append(out, r.searchWholeFile(file, name, stype, ns)...)
			continue
		}
		masked := r.load(file).MaskedString()
		out = append(out, r.searchBlockStatements(file, masked, bodyStart, bodyEnd, name, stype, ns)...)
	}
	return out
}

// moduleBody resolves a KindModule Match to the byte range that should
// be searched for its members: either the inline `{ … }` body in the
// same file, or (file, 0, 0, false, true) signalling "search the whole
// sibling file" for an external `mod foo;` declaration, following the
// source-tree convention: `foo.rs`, then `foo/mod.rs`.
func (r *Resolver) moduleBody(m core.Match) (file string, bodyStart, bodyEnd int, sameFile, ok bool) {
	masked := r.load(m.File).MaskedString()
	for i := m.Point; i < len(masked); i++ {
		switch masked[i] {
		case '{':
			end := scopes.ScopeEnd(masked, i+1)
			return m.File, i + 1, end, true, true
		case ';':
			dir := filepath.Dir(m.File)
			candidate := filepath.Join(dir, m.Name+".rs")
			if src := r.load(candidate); !src.Missing {
				return candidate, 0, 0, false, true
			}
			candidate = filepath.Join(dir, m.Name, "mod.rs")
			if src := r.load(candidate); !src.Missing {
				return candidate, 0, 0, false, true
			}
			return "", 0, 0, false, false
		}
	}
	return "", 0, 0, false, false
}

// searchPrelude searches libstd's prelude.rs on every configured
// RUST_SRC_PATH entry, treating it as though `use std::prelude::v1::*`
// were issued from the crate root. A missing or unset RUST_SRC_PATH
// yields no matches, never an error.
func (r *Resolver) searchPrelude(name string, stype core.SearchType, ns core.Namespace) []core.Match {
	var out []core.Match
	for _, srcPath := range r.RustSrcPaths {
		preludeFile := filepath.Join(srcPath, "libstd", "prelude.rs")
		if src := r.load(preludeFile); !src.Missing {
			out = append(out, r.searchWholeFile(preludeFile, name, stype, ns)...)
		}
	}
	return out
}

// searchCrateRoot searches the current crate's root file, skipping
// the search when origin.File is already the root (searchLocalScopes's
// outermost block already covered it).
func (r *Resolver) searchCrateRoot(name string, origin core.Scope, stype core.SearchType, ns core.Namespace) []core.Match {
	root, ok := r.Manifest.CrateRoot("", origin.File)
	if !ok || root == origin.File {
		return nil
	}
	return r.searchWholeFile(root, name, stype, ns)
}

// searchFilesystemNames handles a StartsWith search on the top
// segment of a path: a prefix also matches neighbouring files named
// `prefix*.rs`, surfaced as unloaded-module matches so that completing
// `foo::` can discover modules nothing has `use`d or `mod`-declared yet.
func (r *Resolver) searchFilesystemNames(prefix string, origin core.Scope) []core.Match {
	dir := filepath.Dir(origin.File)
	pattern := filepath.Join(dir, prefix+"*.rs")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		r.Log.Debug("resolver: filesystem-name glob failed", "pattern", pattern, "err", err)
		return nil
	}
	var out []core.Match
	for _, mpath := range matches {
		if mpath == origin.File {
			continue
		}
		base := filepath.Base(mpath)
		name := base[:len(base)-len(filepath.Ext(base))]
		out = append(out, core.Match{Name: name, File: mpath, Point: 0, Kind: core.KindModule})
	}
	return out
}


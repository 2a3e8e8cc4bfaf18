// Package session is the Match Graph & Cache: an in-memory cache of
// file contents, parsed ASTs keyed by (file, byte range), plus a
// per-query recursion guard. A Session is created per top-level query
// and discarded when the query returns; its caches may optionally be
// kept alive across sequential queries, but must never be mutated
// concurrently, so every access here goes through a single mutex
// rather than assuming single-threaded callers.
package session

import (
	"sync"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phildawes/racer/srcindex"
	"github.com/phildawes/racer/syntax"
)

// Session bundles the Source Index, the Syntax Service, a
// parsed-snippet cache, and the recursion guard, so a query only ever
// has to thread one value through the resolver/evaluator. ID exists
// purely for log correlation (slog.With("session", sess.ID)).
type Session struct {
	ID uuid.UUID

	Index  *srcindex.Index
	Syntax *syntax.Service

	mu      sync.Mutex
	snippet map[snippetKey]snippetEntry
	guard   []guardEntry
}

// New creates a Session scoped to one top-level query.
func New() *Session {
	return &Session{
		ID:      uuid.New(),
		Index:   srcindex.New(),
		Syntax:  syntax.New(),
		snippet: make(map[snippetKey]snippetEntry),
	}
}

// snippetKey identifies one parsed fragment by its originating file
// and byte range. Two different statement blobs at the same range
// never coexist within one Session, so the range alone is a safe key.
type snippetKey struct {
	File       string
	Start, End int
}

type snippetEntry struct {
	node *sitter.Node
	buf  []byte
}

// ParseStatement returns the parsed snippet for blob (the statement
// text found at [start, end) in file), parsing once per (file, range)
// and reusing the result for every later query that revisits the same
// statement — e.g. repeated completions inside one unchanged function
// body.
func (s *Session) ParseStatement(file string, start, end int, blob string) (node *sitter.Node, buf []byte) {
	key := snippetKey{File: file, Start: start, End: end}

	s.mu.Lock()
	if cached, ok := s.snippet[key]; ok {
		s.mu.Unlock()
		return cached.node, cached.buf
	}
	s.mu.Unlock()

	n, b, err := s.Syntax.ParseStatement(blob)
	if err != nil {
		return nil, nil
	}

	s.mu.Lock()
	s.snippet[key] = snippetEntry{node: n, buf: b}
	s.mu.Unlock()
	return n, b
}

// InvalidateFile drops every cached snippet belonging to file, for
// callers that re-issue a query after an editor buffer changed. The
// Source Index entry is not touched; Index.CacheContents replaces it.
func (s *Session) InvalidateFile(file string) {
	s.mu.Lock()
	for k := range s.snippet {
		if k.File == file {
			delete(s.snippet, k)
		}
	}
	s.mu.Unlock()
}

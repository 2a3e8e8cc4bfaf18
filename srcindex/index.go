// Package srcindex loads a file once, produces its masked twin, and
// maps between byte offsets and (line, column) coordinates. Everything
// downstream — the chunker, scopes, matchers, resolver — reads through
// an IndexedSource rather than touching the filesystem directly.
package srcindex

import (
	"os"
	"sort"
)

// IndexedSource is the per-file unit the rest of the engine works
// against. Raw and Masked are always the same length.
type IndexedSource struct {
	File    string
	Raw     []byte
	Masked  []byte
	Missing bool // true if the file did not exist; callers must skip, never abort

	newlines []int // byte offsets of '\n', computed lazily
}

// RawString and MaskedString give the string views most callers want.
func (s *IndexedSource) RawString() string    { return string(s.Raw) }
func (s *IndexedSource) MaskedString() string { return string(s.Masked) }

func newIndexed(file string, raw []byte) *IndexedSource {
	return &IndexedSource{File: file, Raw: raw, Masked: Mask(raw)}
}

func missingIndexed(file string) *IndexedSource {
	return &IndexedSource{File: file, Missing: true}
}

// ensureNewlines computes and caches the sorted newline offsets on
// first access.
func (s *IndexedSource) ensureNewlines() {
	if s.newlines != nil {
		return
	}
	nl := make([]int, 0, 64)
	for i, b := range s.Raw {
		if b == '\n' {
			nl = append(nl, i)
		}
	}
	s.newlines = nl
}

// PointToCoords maps a byte offset to a 0-based (line, column) pair.
// Columns are byte offsets within the line; points past EOF are
// clamped to len(Raw) rather than causing an error.
func (s *IndexedSource) PointToCoords(point int) (line, column int) {
	s.ensureNewlines()
	if point < 0 {
		point = 0
	}
	if point > len(s.Raw) {
		point = len(s.Raw)
	}

	// Binary search for the last newline offset < point.
	idx := sort.Search(len(s.newlines), func(i int) bool {
		return s.newlines[i] >= point
	})
	line = idx
	lineStart := 0
	if idx > 0 {
		lineStart = s.newlines[idx-1] + 1
	}
	column = point - lineStart
	return line, column
}

// CoordsToPoint is the inverse of PointToCoords.
func (s *IndexedSource) CoordsToPoint(line, column int) int {
	s.ensureNewlines()
	if line < 0 {
		line = 0
	}
	lineStart := 0
	if line > 0 {
		if line-1 < len(s.newlines) {
			lineStart = s.newlines[line-1] + 1
		} else {
			return len(s.Raw)
		}
	}
	point := lineStart + column
	if point > len(s.Raw) {
		point = len(s.Raw)
	}
	return point
}

// Index is the file cache: a map from path to IndexedSource, safe for
// concurrent access, with single-flighted loads so two concurrent
// queries sharing a Session never parse the same file twice.
type Index struct {
	cache  *fileCache
	shadow map[string][]byte // cache_contents: editor/stdin buffers shadowing disk
}

// New creates an empty Source Index, scoped to one query Session.
func New() *Index {
	return &Index{
		cache:  newFileCache(),
		shadow: make(map[string][]byte),
	}
}

// CacheContents shadows the on-disk contents of file with text, for
// editor buffers that have not been saved.
func (idx *Index) CacheContents(file string, text []byte) {
	idx.shadow[file] = text
	idx.cache.invalidate(file)
}

// Load returns the IndexedSource for file, parsing (masking) it once
// and caching the result. A missing file yields an empty, Missing
// IndexedSource rather than an error.
func (idx *Index) Load(file string) *IndexedSource {
	if shadowed, ok := idx.shadow[file]; ok {
		return idx.cache.getOrLoad(file, func() *IndexedSource {
			return newIndexed(file, shadowed)
		})
	}
	return idx.cache.getOrLoad(file, func() *IndexedSource {
		raw, err := os.ReadFile(file)
		if err != nil {
			return missingIndexed(file)
		}
		return newIndexed(file, raw)
	})
}

// Package core holds the data model shared by every other package in the
// engine: Match, Path, Ty, Scope and the small enums that drive search.
// Nothing here touches the filesystem, tree-sitter, or any other package —
// it is the vocabulary the rest of the engine is written in.
package core

import "fmt"

// MatchKind tags the shape of whatever a Match names. Kept as a closed
// sum rather than an interface because several callers (impl search,
// type evaluation) only make sense for a subset of kinds and want to
// switch over all of them exhaustively.
type MatchKind int

const (
	KindModule MatchKind = iota
	KindFunction
	KindStruct
	KindEnum
	KindEnumVariant
	KindTrait
	KindTraitBound
	KindImpl
	KindType
	KindConst
	KindStatic
	KindLet
	KindFnArg
	KindStructField
	KindBuiltin
	KindCrate
	KindMatchArm
)

func (k MatchKind) String() string {
	switch k {
	case KindModule:
		return "Module"
	case KindFunction:
		return "Function"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindEnumVariant:
		return "EnumVariant"
	case KindTrait:
		return "Trait"
	case KindTraitBound:
		return "TraitBound"
	case KindImpl:
		return "Impl"
	case KindType:
		return "Type"
	case KindConst:
		return "Const"
	case KindStatic:
		return "Static"
	case KindLet:
		return "Let"
	case KindFnArg:
		return "FnArg"
	case KindStructField:
		return "StructField"
	case KindBuiltin:
		return "Builtin"
	case KindCrate:
		return "Crate"
	case KindMatchArm:
		return "MatchArm"
	default:
		return fmt.Sprintf("MatchKind(%d)", int(k))
	}
}

// Namespace reports which namespace a Match of this kind lives in.
// KindImpl has no namespace of its own — impl blocks aren't themselves
// a resolvable name — so it reports Both to never be filtered out by
// accident; callers that search by kind rather than namespace (e.g.
// search_impls) don't consult this.
func (k MatchKind) Namespace() Namespace {
	switch k {
	case KindStruct, KindImpl:
		return Both
	case KindEnum, KindTrait, KindTraitBound, KindType, KindModule, KindCrate:
		return Type
	default:
		return Value
	}
}

// Namespace models Rust's type/value namespace split.
type Namespace int

const (
	Value Namespace = iota
	Type
	Both
)

// Admits reports whether a candidate living in namespace `candidate`
// satisfies a search performed under namespace `want`.
func (want Namespace) Admits(candidate Namespace) bool {
	if want == Both || candidate == Both {
		return true
	}
	return want == candidate
}

// SearchType selects exact-name vs prefix matching.
type SearchType int

const (
	ExactMatch SearchType = iota
	StartsWith
)

// Coords is a 0-based (line, column) position, both byte-indexed.
// Front ends that expect 1-based lines/UTF-16 columns translate at
// their own boundary.
type Coords struct {
	Line   int
	Column int
}

// Scope anchors a resolution: "where am I when resolving?"
type Scope struct {
	File  string
	Point int
}

// PathSegment is one dotted component of a Path, with its own generic
// type arguments.
type PathSegment struct {
	Name     string
	TypeArgs []Path
}

// Path is a Rust-style dotted identifier, e.g. `std::collections::HashMap<K, V>`.
type Path struct {
	Global   bool
	Segments []PathSegment
}

// Head returns the first segment, or the zero value if the path is empty.
func (p Path) Head() PathSegment {
	if len(p.Segments) == 0 {
		return PathSegment{}
	}
	return p.Segments[0]
}

// Last returns the final segment, or the zero value if the path is empty.
func (p Path) Last() PathSegment {
	if len(p.Segments) == 0 {
		return PathSegment{}
	}
	return p.Segments[len(p.Segments)-1]
}

// String renders the path back into Rust-like `::`-joined text, mostly
// for logging and test failure messages.
func (p Path) String() string {
	s := ""
	if p.Global {
		s = "::"
	}
	for i, seg := range p.Segments {
		if i > 0 {
			s += "::"
		}
		s += seg.Name
	}
	return s
}

// SinglePath builds a one-segment Path from a bare identifier, the
// common case for completion and local name lookups.
func SinglePath(name string) Path {
	return Path{Segments: []PathSegment{{Name: name}}}
}

// PathSearch bundles a Path with the Scope it was written in, because
// generic type arguments on a call must be resolved against the
// *caller's* scope, not the callee's.
type PathSearch struct {
	Path  Path
	Scope Scope
}

// Match is the universal record of a resolved name. It is immutable
// after construction: every field is either a value type or an owned
// string/slice, never a pointer into a cache entry.
type Match struct {
	Name string
	File string
	// Point is a byte offset into the *raw* (unmasked) source; invariant:
	// raw[Point:Point+len(Name)] == Name.
	Point int
	// Coords is filled in lazily by srcindex.PointToCoords; HasCoords
	// distinguishes "not yet computed" from line 0, column 0.
	Coords       Coords
	HasCoords    bool
	Kind         MatchKind
	Local        bool
	Context      string
	GenericArgs  []string
	GenericTypes []PathSearch
	Docs         string
}

// WithCoords returns a copy of m with Coords set, leaving m untouched
// — Matches are immutable once constructed.
func (m Match) WithCoords(c Coords) Match {
	m.Coords = c
	m.HasCoords = true
	return m
}

// Key is the deduplication key used by the Query Facade.
type Key struct {
	File  string
	Point int
	Name  string
	Kind  MatchKind
}

func (m Match) Key() Key {
	return Key{File: m.File, Point: m.Point, Name: m.Name, Kind: m.Kind}
}

// UseArrow is one leaf of a `use` declaration: a local name bound to a
// path elsewhere, optionally renamed via `as`, to be followed as a
// reexport arrow. The Name Resolver follows it by recursively
// resolving Target in ImportScope.
type UseArrow struct {
	Name        string
	Target      Path
	ImportScope Scope
	Point       int
}

// ImplRecord is one `impl [Trait for] Type { … }` block. Body is the
// text between the block's braces; BodyStart is its
// absolute byte offset, so callers can run the Statement Iterator over
// it directly.
type ImplRecord struct {
	File       string
	SelfType   string
	TraitName  string // empty for an inherent impl
	Body       string
	BodyStart  int
	GenericArg string // first generic parameter's name, e.g. "T" in `impl<T> Foo<T>`
}

// Binding is one name introduced by a pattern (a `let`/`for`/fn-param
// pattern), paired with the byte offset of that identifier and the
// path, relative to the pattern's driving Ty, needed to recover its
// sub-type when destructuring.
type Binding struct {
	Name  string
	Point int
	// Path addresses this binding within the overall pattern: empty
	// for a bare identifier pattern, or a sequence of tuple/field
	// accessors for nested destructuring, applied against the
	// pattern's driving Ty by the Type Evaluator.
	Path []PatternStep
}

// PatternStep is one step of a Binding's Path: either a positional
// tuple/tuple-struct index, or a named struct field.
type PatternStep struct {
	Index int // used when Field == ""
	Field string
}

package core

// TyKind discriminates the Ty sum type. Ty is deep-copied freely —
// large type trees are rare in practice — so every variant is a
// value, never a shared pointer.
type TyKind int

const (
	TyUnsupported TyKind = iota
	TyMatch
	TyPathSearch
	TyRefPtr
	TyTuple
	TyVec
	TyFixedLengthVec
)

// Ty is the inferred type of an expression, in this engine's closed
// type-language. Only the fields relevant to Kind are populated;
// callers are expected to switch on Kind exhaustively rather than
// type-assert.
type Ty struct {
	Kind TyKind

	// TyMatch
	Match *Match

	// TyPathSearch
	PathSearch PathSearch

	// TyRefPtr
	Inner *Ty

	// TyTuple
	Elements []Ty

	// TyVec / TyFixedLengthVec
	Elem *Ty
	// TyFixedLengthVec only: the array-length expression, kept as raw
	// source text since the evaluator does not execute const exprs.
	LengthExpr string
}

func UnsupportedTy() Ty { return Ty{Kind: TyUnsupported} }

func MatchTy(m Match) Ty { return Ty{Kind: TyMatch, Match: &m} }

func PathSearchTy(ps PathSearch) Ty { return Ty{Kind: TyPathSearch, PathSearch: ps} }

func RefPtrTy(inner Ty) Ty { return Ty{Kind: TyRefPtr, Inner: &inner} }

func TupleTy(elems []Ty) Ty { return Ty{Kind: TyTuple, Elements: elems} }

func VecTy(elem Ty) Ty { return Ty{Kind: TyVec, Elem: &elem} }

func FixedLengthVecTy(elem Ty, lengthExpr string) Ty {
	return Ty{Kind: TyFixedLengthVec, Elem: &elem, LengthExpr: lengthExpr}
}

// Deref strips RefPtr layers, since references are transparent for
// member access.
func (t Ty) Deref() Ty {
	for t.Kind == TyRefPtr && t.Inner != nil {
		t = *t.Inner
	}
	return t
}

func (t Ty) IsUnsupported() bool { return t.Kind == TyUnsupported }

func (t Ty) String() string {
	switch t.Kind {
	case TyMatch:
		if t.Match != nil {
			return t.Match.Name
		}
		return "<match>"
	case TyPathSearch:
		return t.PathSearch.Path.String()
	case TyRefPtr:
		if t.Inner != nil {
			return "&" + t.Inner.String()
		}
		return "&?"
	case TyTuple:
		s := "("
		for i, e := range t.Elements {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	case TyVec:
		if t.Elem != nil {
			return "[" + t.Elem.String() + "]"
		}
		return "[]"
	case TyFixedLengthVec:
		if t.Elem != nil {
			return "[" + t.Elem.String() + "; " + t.LengthExpr + "]"
		}
		return "[; " + t.LengthExpr + "]"
	default:
		return "<unsupported>"
	}
}

package core

import "testing"

func TestPathString(t *testing.T) {
	p := Path{Segments: []PathSegment{{Name: "std"}, {Name: "collections"}, {Name: "HashMap"}}}
	if got, want := p.String(), "std::collections::HashMap"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	global := Path{Global: true, Segments: []PathSegment{{Name: "foo"}}}
	if got, want := global.String(), "::foo"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathHeadLast(t *testing.T) {
	p := SinglePath("apple")
	if p.Head().Name != "apple" || p.Last().Name != "apple" {
		t.Fatalf("single-segment Head/Last mismatch: %+v", p)
	}

	empty := Path{}
	if empty.Head().Name != "" || empty.Last().Name != "" {
		t.Errorf("empty path Head/Last should be zero value")
	}
}

func TestMatchKeyDedup(t *testing.T) {
	a := Match{Name: "apple", File: "lib.rs", Point: 10, Kind: KindLet}
	b := Match{Name: "apple", File: "lib.rs", Point: 10, Kind: KindLet, Docs: "different docs"}
	if a.Key() != b.Key() {
		t.Errorf("matches differing only in non-identity fields should share a Key")
	}

	c := Match{Name: "apple", File: "lib.rs", Point: 11, Kind: KindLet}
	if a.Key() == c.Key() {
		t.Errorf("matches at different points must not share a Key")
	}
}

func TestMatchWithCoordsLeavesOriginalUntouched(t *testing.T) {
	m := Match{Name: "apple"}
	withCoords := m.WithCoords(Coords{Line: 3, Column: 4})

	if m.HasCoords {
		t.Errorf("original Match must not be mutated by WithCoords")
	}
	if !withCoords.HasCoords || withCoords.Coords != (Coords{Line: 3, Column: 4}) {
		t.Errorf("WithCoords did not set coordinates on the copy: %+v", withCoords)
	}
}

func TestNamespaceAdmits(t *testing.T) {
	cases := []struct {
		want, candidate Namespace
		admits          bool
	}{
		{Value, Value, true},
		{Value, Type, false},
		{Both, Value, true},
		{Both, Type, true},
		{Value, Both, true},
	}
	for _, c := range cases {
		if got := c.want.Admits(c.candidate); got != c.admits {
			t.Errorf("Namespace(%d).Admits(%d) = %v, want %v", c.want, c.candidate, got, c.admits)
		}
	}
}

func TestMatchKindNamespace(t *testing.T) {
	if KindStruct.Namespace() != Both {
		t.Errorf("KindStruct should live in Both namespaces (type and constructor)")
	}
	if KindTrait.Namespace() != Type {
		t.Errorf("KindTrait should live in the Type namespace")
	}
	if KindLet.Namespace() != Value {
		t.Errorf("KindLet should live in the Value namespace")
	}
}

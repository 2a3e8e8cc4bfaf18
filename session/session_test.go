package session

import (
	"testing"

	"github.com/phildawes/racer/core"
)

func TestNewSessionHasUniqueID(t *testing.T) {
	a := New()
	b := New()
	if a.ID == b.ID {
		t.Error("expected distinct session IDs")
	}
}

func TestParseStatementCachesByRange(t *testing.T) {
	s := New()
	node1, buf1 := s.ParseStatement("f.rs", 0, 10, "let x = 1;")
	node2, buf2 := s.ParseStatement("f.rs", 0, 10, "let x = 1;")
	if node1 != node2 || &buf1[0] != &buf2[0] {
		t.Error("expected second ParseStatement call to hit the cache")
	}
}

func TestGuardDetectsRepeat(t *testing.T) {
	s := New()
	origin := core.Scope{File: "a.rs", Point: 5}
	path := core.SinglePath("Foo")

	if repeat := s.Enter(path, origin); repeat {
		t.Fatal("first Enter should not be a repeat")
	}
	if repeat := s.Enter(path, origin); !repeat {
		t.Fatal("second Enter with the same triple should be a repeat")
	}
	s.Exit(path, origin)

	if repeat := s.Enter(path, origin); repeat {
		t.Fatal("after Exit, Enter should succeed again")
	}
}

func TestGuardDistinguishesOrigins(t *testing.T) {
	s := New()
	path := core.SinglePath("Foo")
	if repeat := s.Enter(path, core.Scope{File: "a.rs", Point: 1}); repeat {
		t.Fatal("unexpected repeat")
	}
	if repeat := s.Enter(path, core.Scope{File: "a.rs", Point: 2}); repeat {
		t.Fatal("different origin point should not be a repeat")
	}
}

package srcindex

import "testing"

func assertMaskedLen(t *testing.T, raw string) []byte {
	t.Helper()
	masked := Mask([]byte(raw))
	if len(masked) != len(raw) {
		t.Fatalf("mask changed length: raw=%d masked=%d", len(raw), len(masked))
	}
	return masked
}

func TestMaskLineComment(t *testing.T) {
	raw := "let x = 1; // a comment\nlet y = 2;"
	masked := assertMaskedLen(t, raw)
	commentStart := len("let x = 1; ")
	newline := len("let x = 1; // a comment")
	for i := commentStart; i < newline; i++ {
		if masked[i] != ' ' {
			t.Fatalf("expected blank at %d, got %q in %q", i, masked[i], masked)
		}
	}
	if masked[newline] != '\n' {
		t.Fatalf("expected newline preserved at %d: %q", newline, masked)
	}
	if string(masked[newline+1:]) != "let y = 2;" {
		t.Errorf("code after comment corrupted: %q", masked[newline+1:])
	}
}

func TestMaskBlockCommentNested(t *testing.T) {
	raw := "a /* outer /* inner */ still-outer */ b"
	masked := assertMaskedLen(t, raw)
	if string(masked[0]) != "a" || masked[len(masked)-1] != 'b' {
		t.Errorf("code outside comment corrupted: %q", masked)
	}
	for i := 2; i < len(raw)-2; i++ {
		if masked[i] != ' ' {
			t.Fatalf("expected blank at %d, got %q in %q", i, masked[i], masked)
		}
	}
}

func TestMaskStringContents(t *testing.T) {
	raw := `let s = "hello // not a comment";`
	masked := assertMaskedLen(t, raw)
	if masked[8] != '"' || masked[len(masked)-2] != '"' {
		t.Errorf("quotes should be preserved: %q", masked)
	}
	inner := string(masked[9 : len(masked)-2])
	for _, c := range inner {
		if c != ' ' {
			t.Fatalf("string contents not blanked: %q", masked)
		}
	}
}

func TestMaskEscapedQuoteInString(t *testing.T) {
	raw := `"a \" b"`
	masked := assertMaskedLen(t, raw)
	if masked[0] != '"' || masked[len(masked)-1] != '"' {
		t.Fatalf("expected surrounding quotes preserved: %q", masked)
	}
}

func TestMaskRawString(t *testing.T) {
	raw := `r#"contains "quotes" and // fake comment"#`
	masked := assertMaskedLen(t, raw)
	if string(masked[:3]) != `r#"` {
		t.Errorf("raw string opener should survive: %q", masked)
	}
	if string(masked[len(masked)-2:]) != `"#` {
		t.Errorf("raw string closer should survive: %q", masked)
	}
}

func TestMaskCharLiteral(t *testing.T) {
	raw := `let c = '/';`
	masked := assertMaskedLen(t, raw)
	if masked[8] != '\'' || masked[10] != '\'' {
		t.Fatalf("quotes around char literal should survive: %q", masked)
	}
	if masked[9] != ' ' {
		t.Fatalf("char literal contents should be blanked: %q", masked)
	}
}

func TestMaskLifetimeIsNotCharLiteral(t *testing.T) {
	raw := `fn f<'a>(x: &'a str) -> &'a str`
	masked := assertMaskedLen(t, raw)
	if string(masked) != raw {
		t.Errorf("lifetimes must be left untouched: got %q want %q", masked, raw)
	}
}

func TestPointToCoordsAndBack(t *testing.T) {
	src := newIndexed("t.rs", []byte("line0\nline1\nline2"))
	line, col := src.PointToCoords(0)
	if line != 0 || col != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", line, col)
	}
	line, col = src.PointToCoords(6) // start of "line1"
	if line != 1 || col != 0 {
		t.Errorf("expected (1,0), got (%d,%d)", line, col)
	}
	p := src.CoordsToPoint(2, 2)
	if p != 14 {
		t.Errorf("expected point 14, got %d", p)
	}
}

func TestPointToCoordsClampsPastEOF(t *testing.T) {
	src := newIndexed("t.rs", []byte("abc"))
	line, col := src.PointToCoords(1000)
	if line != 0 || col != 3 {
		t.Errorf("expected clamp to (0,3), got (%d,%d)", line, col)
	}
}

func TestLoadMissingFileDoesNotAbort(t *testing.T) {
	idx := New()
	s := idx.Load("/does/not/exist.rs")
	if !s.Missing {
		t.Fatal("expected Missing=true for a nonexistent file")
	}
	if len(s.Raw) != 0 {
		t.Fatalf("expected empty source, got %q", s.Raw)
	}
}

func TestCacheContentsShadowsDisk(t *testing.T) {
	idx := New()
	idx.CacheContents("buf.rs", []byte("fn main() {}"))
	s := idx.Load("buf.rs")
	if s.Missing {
		t.Fatal("shadowed buffer should not be Missing")
	}
	if s.RawString() != "fn main() {}" {
		t.Errorf("unexpected shadowed contents: %q", s.RawString())
	}
}

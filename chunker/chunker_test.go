package chunker

import "testing"

func TestCodeChunksSkipsLineComment(t *testing.T) {
	src := "code1 // a comment\ncode2"
	ranges := CodeChunks(src)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(ranges), ranges)
	}
	if src[ranges[0].Start:ranges[0].End] != "code1 " {
		t.Errorf("unexpected first chunk: %q", src[ranges[0].Start:ranges[0].End])
	}
	if src[ranges[1].Start:ranges[1].End] != "\ncode2" {
		t.Errorf("unexpected second chunk: %q", src[ranges[1].Start:ranges[1].End])
	}
}

func TestCodeChunksSkipsString(t *testing.T) {
	src := `before "skip me // not a comment" after`
	ranges := CodeChunks(src)
	var joined string
	for _, r := range ranges {
		joined += src[r.Start:r.End]
	}
	if containsSkipMe(ranges, src) {
		t.Errorf("string contents leaked into a chunk: %v", ranges)
	}
}

func containsSkipMe(ranges []Range, src string) bool {
	for _, r := range ranges {
		blob := src[r.Start:r.End]
		if len(blob) >= len("skip me") {
			for i := 0; i+len("skip me") <= len(blob); i++ {
				if blob[i:i+len("skip me")] == "skip me" {
					return true
				}
			}
		}
	}
	return false
}

func TestStatementsSimpleSemicolons(t *testing.T) {
	src := "let a = 1; let b = 2;"
	ranges := Statements(src)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(ranges), ranges)
	}
	if src[ranges[0].Start:ranges[0].End] != "let a = 1;" {
		t.Errorf("unexpected first statement: %q", src[ranges[0].Start:ranges[0].End])
	}
	if src[ranges[1].Start:ranges[1].End] != " let b = 2;" {
		t.Errorf("unexpected second statement: %q", src[ranges[1].Start:ranges[1].End])
	}
}

func TestStatementsBlockShapedItem(t *testing.T) {
	src := "fn foo() { let x = 1; }\nstruct Bar { a: u32 }"
	ranges := Statements(src)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(ranges), ranges)
	}
	if src[ranges[0].Start:ranges[0].End] != "fn foo() { let x = 1; }" {
		t.Errorf("unexpected fn statement: %q", src[ranges[0].Start:ranges[0].End])
	}
}

func TestStatementsAttributeAttachesToItem(t *testing.T) {
	src := "#[derive(Debug)]\nstruct Foo { a: u32 }"
	ranges := Statements(src)
	if len(ranges) != 1 {
		t.Fatalf("expected attribute and struct to be one statement, got %d: %v", len(ranges), ranges)
	}
	if src[ranges[0].Start:ranges[0].End] != src {
		t.Errorf("expected whole blob as one statement, got %q", src[ranges[0].Start:ranges[0].End])
	}
}

func TestStatementsNestedBraces(t *testing.T) {
	src := "fn foo() { if true { bar(); } }"
	ranges := Statements(src)
	if len(ranges) != 1 {
		t.Fatalf("expected 1 statement, got %d: %v", len(ranges), ranges)
	}
	if src[ranges[0].Start:ranges[0].End] != src {
		t.Errorf("expected whole fn as one statement, got %q", src[ranges[0].Start:ranges[0].End])
	}
}

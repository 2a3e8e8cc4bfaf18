package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCrateRootResolvesOwnPackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"widgets\"\nversion = \"0.1.0\"\n")
	writeFile(t, filepath.Join(root, "src", "lib.rs"), "pub struct Widget;\n")

	r := NewCargoReader()
	path, ok := r.CrateRoot("widgets", filepath.Join(root, "src", "lib.rs"))
	if !ok {
		t.Fatal("expected to resolve own package")
	}
	if path != filepath.Join(root, "src", "lib.rs") {
		t.Errorf("unexpected path: %s", path)
	}
}

func TestCrateRootResolvesPathDependency(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"),
		"[package]\nname = \"app\"\nversion = \"0.1.0\"\n\n[dependencies]\nhelper = { path = \"../helper\" }\nserde = \"1.0\"\n")
	writeFile(t, filepath.Join(root, "src", "main.rs"), "fn main() {}\n")
	helperDir := filepath.Join(filepath.Dir(root), "helper")
	writeFile(t, filepath.Join(helperDir, "src", "lib.rs"), "pub fn help() {}\n")

	r := NewCargoReader()
	path, ok := r.CrateRoot("helper", filepath.Join(root, "src", "main.rs"))
	if !ok {
		t.Fatal("expected to resolve path dependency")
	}
	if path != filepath.Join(helperDir, "src", "lib.rs") {
		t.Errorf("unexpected path: %s", path)
	}
}

func TestCrateRootMissingRegistryDependencyYieldsNoMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"),
		"[package]\nname = \"app\"\nversion = \"0.1.0\"\n\n[dependencies]\nserde = \"1.0\"\n")
	writeFile(t, filepath.Join(root, "src", "main.rs"), "fn main() {}\n")

	r := NewCargoReader()
	_, ok := r.CrateRoot("serde", filepath.Join(root, "src", "main.rs"))
	if ok {
		t.Fatal("expected registry dependency to yield no match")
	}
}

func TestCrateRootWalksUpToNearestManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"widgets\"\nversion = \"0.1.0\"\n")
	writeFile(t, filepath.Join(root, "src", "lib.rs"), "pub mod inner;\n")
	writeFile(t, filepath.Join(root, "src", "inner.rs"), "pub struct Inner;\n")

	r := NewCargoReader()
	path, ok := r.CrateRoot("widgets", filepath.Join(root, "src", "inner.rs"))
	if !ok || path != filepath.Join(root, "src", "lib.rs") {
		t.Fatalf("expected to find enclosing crate root, got %s ok=%v", path, ok)
	}
}

func TestCrateRootNoManifestFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "orphan.rs"), "fn f() {}\n")

	r := NewCargoReader()
	_, ok := r.CrateRoot("anything", filepath.Join(root, "orphan.rs"))
	if ok {
		t.Fatal("expected no manifest to be found")
	}
}

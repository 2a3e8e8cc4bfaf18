// Package manifest locates the root source file of a named crate,
// given the file a reference to it was written in. Grounded on
// cargo.rs, simplified to the two cases that matter for name
// resolution: a path dependency declared in the nearest Cargo.toml,
// and the crate's own package root when the name matches the
// enclosing package. Registry/git dependency resolution (walking
// ~/.cargo) is out of scope — those crates simply yield no matches
// rather than an error.
package manifest

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Reader is the contract the core resolver consumes. It is treated as
// a pure function of (crateName, fromFile).
type Reader interface {
	CrateRoot(crateName, fromFile string) (string, bool)
}

// cargoManifest holds the handful of Cargo.toml fields this reader
// cares about. Racer's own crate-root discovery only ever needs the
// package name and path-dependency table, so a full TOML document
// model would be pure overhead here — a line scanner over the two
// sections it touches is enough, in the style of actix.go's
// checkCargoForDependency.
type cargoManifest struct {
	packageName string
	pathDeps    map[string]string // dependency name -> path value
}

// CargoReader reads on-disk Cargo.toml files with no caching of its
// own — callers that issue many queries against the same crate should
// cache results at the Session level instead.
type CargoReader struct{}

func NewCargoReader() *CargoReader { return &CargoReader{} }

// CrateRoot finds fromFile's nearest Cargo.toml, and resolves
// crateName against it: the enclosing package itself, or a `path =`
// dependency.
func (r *CargoReader) CrateRoot(crateName, fromFile string) (string, bool) {
	dir := filepath.Dir(fromFile)
	cargoPath, manifestDir, ok := findCargoToml(dir)
	if !ok {
		return "", false
	}

	m, ok := loadManifest(cargoPath)
	if !ok {
		return "", false
	}

	// crateName == "" asks for the enclosing package's own root — the
	// resolver's "crate root of the current crate" step, which has no
	// crate name to match against.
	if crateName == "" || m.packageName == crateName {
		return crateEntryPoint(manifestDir)
	}

	if path, ok := m.pathDeps[crateName]; ok {
		return crateEntryPoint(filepath.Join(manifestDir, path))
	}

	return "", false
}

func findCargoToml(dir string) (cargoPath, manifestDir string, ok bool) {
	for {
		candidate := filepath.Join(dir, "Cargo.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", false
		}
		dir = parent
	}
}

// loadManifest scans Cargo.toml line by line, tracking which `[section]`
// it is in. It understands `name = "..."` inside `[package]` and both
// `dep = { path = "..." }` and bare `dep = "1.0"` forms inside
// `[dependencies]`; anything else (features, workspace tables, git/registry
// deps) is skipped.
func loadManifest(path string) (cargoManifest, bool) {
	m := cargoManifest{pathDeps: make(map[string]string)}

	file, err := os.Open(path)
	if err != nil {
		return m, false
	}
	defer file.Close()

	section := ""
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			section = strings.Trim(line, "[]")
			continue
		}

		key, value, ok := splitAssignment(line)
		if !ok {
			continue
		}

		switch section {
		case "package":
			if key == "name" {
				m.packageName = unquote(value)
			}
		case "dependencies":
			if path, ok := extractPath(value); ok {
				m.pathDeps[key] = path
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return m, false
	}
	return m, true
}

// splitAssignment parses a `key = value` line, returning ok=false for
// anything else (table headers, array-of-tables, continuation lines).
func splitAssignment(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// extractPath pulls a `path = "..."` entry out of an inline table
// value like `{ path = "../helper", version = "0.1" }`. A bare version
// string (`"1.0"`) has no path and yields ok=false.
func extractPath(value string) (string, bool) {
	if !strings.HasPrefix(value, "{") {
		return "", false
	}
	idx := strings.Index(value, "path")
	if idx == -1 {
		return "", false
	}
	rest := value[idx+len("path"):]
	eq := strings.Index(rest, "=")
	if eq == -1 {
		return "", false
	}
	return unquote(strings.TrimSpace(trimToNextComma(rest[eq+1:]))), true
}

func trimToNextComma(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, ",}"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return s
}

// crateEntryPoint resolves a crate directory's root source file:
// `src/lib.rs` for a library crate, falling back to `src/main.rs`.
func crateEntryPoint(crateDir string) (string, bool) {
	lib := filepath.Join(crateDir, "src", "lib.rs")
	if _, err := os.Stat(lib); err == nil {
		return lib, true
	}
	main := filepath.Join(crateDir, "src", "main.rs")
	if _, err := os.Stat(main); err == nil {
		return main, true
	}
	return "", false
}

package pathvalidate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_DenyWinsOverAllow(t *testing.T) {
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	if err := os.Mkdir(gitDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configFile := filepath.Join(gitDir, "config")
	if err := os.WriteFile(configFile, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := New(Config{
		AllowedPaths: []string{dir + "/**"},
		DeniedPaths:  []string{"**/.git/**"},
	})

	_, err := v.Validate(configFile)
	if err == nil {
		t.Fatal("expected deny to win, got nil error")
	}
	verr, ok := err.(*Error)
	if !ok || verr.Kind != KindPolicyViolation {
		t.Fatalf("expected PolicyViolation, got %v", err)
	}
}

func TestValidate_OutsideAllowIsAccessDenied(t *testing.T) {
	dir := t.TempDir()
	v := New(Config{AllowedPaths: []string{dir + "/project/**"}})

	_, err := v.Validate(filepath.Join(dir, "elsewhere", "f.txt"))
	verr, ok := err.(*Error)
	if !ok || verr.Kind != KindAccessDenied {
		t.Fatalf("expected AccessDenied, got %v", err)
	}
}

func TestValidate_TraversalEscapesAllowedRoot(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatal(err)
	}

	v := New(Config{AllowedPaths: []string{project + "/**"}})

	traversal := filepath.Join(project, "..", "..", "etc", "passwd")
	_, err := v.Validate(traversal)
	if err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	v := New(Config{AllowedPaths: []string{dir + "/**"}})

	first, err := v.Validate(filepath.Join(sub, "new.txt"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := v.Validate(first)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("canonicalization not idempotent: %q vs %q", first, second)
	}
}

func TestValidate_RejectsNulByte(t *testing.T) {
	dir := t.TempDir()
	v := New(Config{AllowedPaths: []string{dir + "/**"}})
	_, err := v.Validate(dir + "/a\x00b")
	verr, ok := err.(*Error)
	if !ok || verr.Kind != KindInvalidInput {
		t.Fatalf("expected InvalidInput for NUL byte, got %v", err)
	}
}

func TestValidate_RejectsZeroWidthUnicode(t *testing.T) {
	dir := t.TempDir()
	v := New(Config{AllowedPaths: []string{dir + "/**"}})
	_, err := v.Validate(dir + "/a​b.txt")
	verr, ok := err.(*Error)
	if !ok || verr.Kind != KindInvalidInput {
		t.Fatalf("expected InvalidInput for zero-width char, got %v", err)
	}
}

func TestValidate_AllowsNonExistentWritePath(t *testing.T) {
	dir := t.TempDir()
	v := New(Config{AllowedPaths: []string{dir + "/**"}})
	canon, err := v.Validate(filepath.Join(dir, "brand-new-file.txt"))
	if err != nil {
		t.Fatalf("expected new file path to validate, got %v", err)
	}
	if filepath.Base(canon) != "brand-new-file.txt" {
		t.Fatalf("unexpected canonical form: %q", canon)
	}
}

func TestGlobSet_DoubleStarAndBraces(t *testing.T) {
	gs := CompileGlobSet([]string{"/home/u/project/**/*.{rs,go}"})
	if !gs.Match("/home/u/project/src/main.go") {
		t.Fatal("expected match for nested .go file")
	}
	if !gs.Match("/home/u/project/a.rs") {
		t.Fatal("expected match for top-level .rs file")
	}
	if gs.Match("/home/u/project/a.txt") {
		t.Fatal("did not expect match for .txt file")
	}
}

package audit

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_EmitWritesJSONLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	cid := NewCorrelationID()
	if err := l.Requested(cid, "read", "/tmp/a.txt"); err != nil {
		t.Fatalf("Requested: %v", err)
	}
	if err := l.Completed(cid, "read", "/tmp/a.txt"); err != nil {
		t.Fatalf("Completed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() {
		lines++
		if !strings.Contains(scanner.Text(), cid) {
			t.Fatalf("line missing correlation id: %s", scanner.Text())
		}
	}
	if lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
}

func TestLogger_RedactsSecretsInReason(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	cid := NewCorrelationID()
	if err := l.Violation(cid, "write", "/etc/passwd", "api_key=abcdefghijklmnopqrstuvwxyz1234"); err != nil {
		t.Fatalf("Violation: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "abcdefghijklmnopqrstuvwxyz1234") {
		t.Fatal("expected secret to be redacted from audit log")
	}
}

func TestLogger_RotatesAtThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	l, err := New(path, WithMaxBytes(50))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	cid := NewCorrelationID()
	for i := 0; i < 10; i++ {
		if err := l.Requested(cid, "read", "/tmp/a.txt"); err != nil {
			t.Fatalf("Requested: %v", err)
		}
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated file to exist: %v", err)
	}
}

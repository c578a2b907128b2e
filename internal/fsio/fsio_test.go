package fsio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	os.WriteFile(path, []byte("hello"), 0o644)

	res, err := ReadFile(path, EncodingAuto, DefaultMaxSizeMB, false)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if res.Text != "hello" || res.IsBase64 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestReadFile_ExceedsSizeCapRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.bin")
	os.WriteFile(path, make([]byte, 2*1024*1024), 0o644)

	_, err := ReadFile(path, EncodingAuto, 1, false)
	if err == nil {
		t.Fatal("expected size cap error")
	}
}

func TestReadFile_AutoBinaryUsesBase64(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	os.WriteFile(path, []byte{0x89, 0x50, 0x4E, 0x47}, 0o644)

	res, err := ReadFile(path, EncodingAuto, DefaultMaxSizeMB, true)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !res.IsBase64 {
		t.Fatal("expected base64 rendering for binary content")
	}
}

func TestWriteFile_CreatesParentsAndBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "a.txt")

	res, err := WriteFile(path, "v1", WriteOptions{Encoding: WriteUTF8, CreateDirectories: true})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if res.BytesWritten != 2 {
		t.Fatalf("expected 2 bytes written, got %d", res.BytesWritten)
	}

	res2, err := WriteFile(path, "v2", WriteOptions{Encoding: WriteUTF8, BackupExisting: true})
	if err != nil {
		t.Fatalf("WriteFile backup: %v", err)
	}
	if res2.BackupPath == "" {
		t.Fatal("expected a backup path")
	}
	backupData, err := os.ReadFile(res2.BackupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backupData) != "v1" {
		t.Fatalf("expected backup to contain v1, got %q", backupData)
	}
}

func TestWriteFile_ExceedsContentCapRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	big := make([]byte, 0)
	_ = big
	opts := WriteOptions{Encoding: WriteUTF8}
	content := string(make([]byte, MaxContentBytes+1))
	_, err := WriteFile(path, content, opts)
	if err == nil {
		t.Fatal("expected content cap error")
	}
}

func TestListDirectory_SortedAndFiltersHidden(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644)

	res, err := ListDirectory(dir, ListOptions{})
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	if res.TotalEntries != 2 {
		t.Fatalf("expected 2 visible entries, got %d", res.TotalEntries)
	}
	if res.Entries[0].Name != "a.txt" || res.Entries[1].Name != "b.txt" {
		t.Fatalf("expected sorted order, got %+v", res.Entries)
	}
}

func TestListDirectory_RecursiveBoundedByMaxDepth(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "a", "b", "c"), 0o755)
	os.WriteFile(filepath.Join(dir, "a", "b", "c", "deep.txt"), []byte("x"), 0o644)

	res, err := ListDirectory(dir, ListOptions{Recursive: true, MaxDepth: 2})
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	for _, e := range res.Entries {
		if e.Name == "deep.txt" {
			t.Fatal("expected depth-bounded walk to exclude entries beyond max_depth")
		}
	}
}

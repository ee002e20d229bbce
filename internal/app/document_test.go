package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/caret/internal/engine"
)

func TestOpenDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello\nworld\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name() != "notes.txt" {
		t.Errorf("expected name notes.txt, got %q", doc.Name())
	}
	if doc.Engine.Text() != "hello\nworld\n" {
		t.Errorf("unexpected content %q", doc.Engine.Text())
	}
	if doc.IsModified() {
		t.Error("fresh document should not be modified")
	}

	if err := doc.Engine.Write("> "); err != nil {
		t.Fatal(err)
	}
	if !doc.IsModified() {
		t.Error("expected document to be modified after a write")
	}

	if err := doc.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if doc.IsModified() {
		t.Error("saved document should not be modified")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "> hello\nworld\n" {
		t.Errorf("unexpected file content %q", data)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode 0600 kept, got %v", info.Mode().Perm())
	}
}

func TestOpenMissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Engine.Len() != 0 || doc.IsScratch() {
		t.Fatalf("expected empty document with a path")
	}

	_ = doc.Engine.Write("created")
	if err := doc.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "created" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestSaveKeepsEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.txt")
	if err := os.WriteFile(path, []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Encoding() != EncodingUTF16LE || doc.Engine.Text() != "hi" {
		t.Fatalf("expected utf-16le \"hi\", got %v %q", doc.Encoding(), doc.Engine.Text())
	}

	doc.Engine.SetCursor(2)
	_ = doc.Engine.Write("!")
	if err := doc.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '!', 0}
	if string(data) != string(want) {
		t.Errorf("expected % x, got % x", want, data)
	}
}

func TestScratchDocument(t *testing.T) {
	doc := NewScratchDocument(engine.WithContent("draft"))
	if !doc.IsScratch() || doc.Name() != "Untitled" {
		t.Errorf("expected untitled scratch document")
	}
	if err := doc.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := doc.SaveAs(path); err != nil {
		t.Fatalf("save as: %v", err)
	}
	if doc.IsScratch() || doc.Name() != "draft.txt" {
		t.Errorf("expected document to adopt the new path, got %q", doc.Path())
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("one two"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	doc.Engine.SetCursor(4)

	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := doc.Reload(false); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if doc.Engine.Text() != "one" {
		t.Errorf("expected reloaded text, got %q", doc.Engine.Text())
	}
	if got := doc.Engine.SelRegions()[0].End; got != 3 {
		t.Errorf("expected caret clamped to 3, got %d", got)
	}

	_ = doc.Engine.Write("!")
	if err := doc.Reload(false); !errors.Is(err, ErrUnsavedChanges) {
		t.Errorf("expected ErrUnsavedChanges, got %v", err)
	}
	if err := doc.Reload(true); err != nil {
		t.Errorf("forced reload: %v", err)
	}
	if doc.IsModified() {
		t.Error("reloaded document should not be modified")
	}
}

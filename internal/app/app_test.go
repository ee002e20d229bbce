package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/engine"
)

func newSession(t *testing.T, cfg *config.Config, opts Options) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func execAll(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := s.ExecuteLine(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
}

func TestSessionScratch(t *testing.T) {
	s := newSession(t, nil, Options{})

	if !s.Document().IsScratch() {
		t.Error("expected a scratch document")
	}
	if s.Highlighter() != nil {
		t.Error("scratch documents without a language should not be highlighted")
	}

	execAll(t, s, "write hello", "move left", "select LeftOfLine")
	if got := s.Engine().SelectedText(); got != "hell" {
		t.Errorf("expected selection %q, got %q", "hell", got)
	}

	execAll(t, s, "delete left")
	if got := s.Engine().Text(); got != "o" {
		t.Errorf("expected text %q, got %q", "o", got)
	}

	m := s.Metrics().Snapshot()
	if m.Moves != 2 || m.Edits != 2 {
		t.Errorf("expected 2 moves and 2 edits, got %d and %d", m.Moves, m.Edits)
	}
}

func TestSessionMultiCursor(t *testing.T) {
	s := newSession(t, nil, Options{})

	execAll(t, s, `write "ab\ncd"`, "cursor 0", "add_cursor 3", `write "1\n2"`)
	if got := s.Engine().Text(); got != "1ab\n2cd" {
		t.Errorf("expected %q, got %q", "1ab\n2cd", got)
	}

	execAll(t, s, "select_all", "newline")
	if got := s.Engine().Text(); got != "\n" {
		t.Errorf("expected a lone line break, got %q", got)
	}
}

func TestSessionCollapse(t *testing.T) {
	s := newSession(t, nil, Options{})

	execAll(t, s, "write abc", "select_all", "collapse", "write d")
	if got := s.Engine().Text(); got != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", got)
	}
}

func TestSessionQuit(t *testing.T) {
	s := newSession(t, nil, Options{})
	if err := s.ExecuteLine("quit"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestSessionUnknownCommand(t *testing.T) {
	s := newSession(t, nil, Options{})
	if err := s.ExecuteLine("fly away"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestSessionReadOnly(t *testing.T) {
	s := newSession(t, nil, Options{ReadOnly: true})

	err := s.ExecuteLine("write x")
	if !errors.Is(err, engine.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "write" {
		t.Errorf("expected a write OperationError, got %v", err)
	}
	if f := s.Metrics().Snapshot().Failures; f != 1 {
		t.Errorf("expected 1 failure, got %d", f)
	}
}

func TestSessionSaveAndHighlight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newSession(t, config.Default(), Options{Path: path})

	h := s.Highlighter()
	if h == nil || h.Language() != "Go" {
		t.Fatalf("expected a Go highlighter, got %v", h)
	}
	e := s.Engine()
	if len(e.ColorSpans(0, e.Len())) == 0 {
		t.Error("expected color spans after opening")
	}

	execAll(t, s, `write "// x\n"`)
	if !s.Document().IsModified() {
		t.Error("expected the document to be modified")
	}
	if len(e.ColorSpans(0, 4)) == 0 {
		t.Error("expected the inserted comment to be colored")
	}

	execAll(t, s, "save")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "// x\npackage main\n" {
		t.Errorf("unexpected file content %q", data)
	}
	if s.Document().IsModified() {
		t.Error("expected the document to be clean after save")
	}
}

func TestSessionReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newSession(t, nil, Options{Path: path})

	execAll(t, s, "write zero ")
	if err := os.WriteFile(path, []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}
	execAll(t, s, "reload")
	if got := s.Engine().Text(); got != "two" {
		t.Errorf("expected reloaded text %q, got %q", "two", got)
	}
}

func TestSessionLineEnding(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.LineEnding = "crlf"
	s := newSession(t, cfg, Options{})

	execAll(t, s, "write a", "newline")
	if got := s.Engine().Text(); got != "a\r\n" {
		t.Errorf("expected %q, got %q", "a\r\n", got)
	}
}

func TestSessionPageHeight(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.PageHeight = 5
	s := newSession(t, cfg, Options{})
	if h := s.Engine().Height(); h != 5 {
		t.Errorf("expected height 5, got %d", h)
	}
}

func TestSessionStartupScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "init.lua")
	if err := os.WriteFile(script, []byte(`caret.write("init") print("ran")`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Script.Path = script
	var out bytes.Buffer
	s := newSession(t, cfg, Options{ScriptOutput: &out})

	if got := s.Engine().Text(); got != "init" {
		t.Errorf("expected %q, got %q", "init", got)
	}
	if out.String() != "ran\n" {
		t.Errorf("unexpected script output %q", out.String())
	}

	if err := os.WriteFile(script, []byte(`caret.move("nowhere")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSession(context.Background(), cfg, Options{}); err == nil {
		t.Error("expected a failing startup script to fail the session")
	}
}

func TestSessionRunScript(t *testing.T) {
	s := newSession(t, nil, Options{})

	err := s.RunScript(context.Background(), `
		caret.write("abc")
		caret.cursor(1)
		caret.move("right", true)
	`)
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if got := s.Engine().SelectedText(); got != "b" {
		t.Errorf("expected selection %q, got %q", "b", got)
	}
	if err := s.RunScript(context.Background(), `error("boom")`); err == nil {
		t.Error("expected script error")
	}
}

func TestSessionWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.txt")
	if err := os.WriteFile(path, []byte("before"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newSession(t, nil, Options{Path: path, Watch: true, WatchDebounce: 10 * time.Millisecond})

	if err := os.WriteFile(path, []byte("after"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for s.Engine().Text() != "after" {
		if time.Now().After(deadline) {
			t.Fatalf("expected external change to be picked up, got %q", s.Engine().Text())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestSessionClose(t *testing.T) {
	s, err := NewSession(context.Background(), nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.ExecuteLine("write x"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := s.RunScript(context.Background(), ""); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from RunScript, got %v", err)
	}
}

func TestSessionLogging(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "caret"})
	s := newSession(t, nil, Options{Logger: log})

	execAll(t, s, "write x")
	if !strings.Contains(buf.String(), "opened Untitled") {
		t.Errorf("expected open log line, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `write "x"`) {
		t.Errorf("expected command log line, got %q", buf.String())
	}
}

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/caret/internal/app"
	"github.com/dshills/caret/internal/config"
)

func TestRunBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := app.NewSession(context.Background(), nil, app.Options{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	script := strings.Join([]string{
		"# comment",
		`write "ab\ncd"`,
		"",
		"cursor 0",
		"add_cursor 3",
		"write >",
		"save",
		"quit",
		"write ignored",
	}, "\n")
	if err := runBatch(s, strings.NewReader(script)); err != nil {
		t.Fatalf("runBatch: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ">ab\n>cd" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestRunBatchReportsFailures(t *testing.T) {
	s, err := app.NewSession(context.Background(), nil, app.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	err = runBatch(s, strings.NewReader("write a\nfly\nwrite b\n"))
	if !errors.Is(err, app.ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if got := s.Engine().Text(); got != "ab" {
		t.Errorf("expected later commands to run, got %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	closeLog()
	if log != app.NullLogger {
		t.Error("interactive sessions without a log file should discard logs")
	}

	cfg.Log.File = filepath.Join(t.TempDir(), "caret.log")
	cfg.Log.Level = "debug"
	log, closeLog, err = newLogger(cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hello %d", 42)
	closeLog()

	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[DEBUG] caret: hello 42") {
		t.Errorf("unexpected log content %q", data)
	}
}

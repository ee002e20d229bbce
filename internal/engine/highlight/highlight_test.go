package highlight

import (
	"errors"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/caret/internal/engine/buffer"
)

func TestNewErrors(t *testing.T) {
	if _, err := New("no-such-language", ""); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("expected ErrUnknownLanguage, got %v", err)
	}
	if _, err := New("go", "no-such-theme"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestForFile(t *testing.T) {
	h, err := ForFile("main.go", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Language() != "Go" {
		t.Errorf("expected Go lexer, got %q", h.Language())
	}

	h, err = ForFile("notes.unknownext", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Language() == "Go" {
		t.Error("expected fallback lexer for unknown extension")
	}
}

func TestApplyColorsTokens(t *testing.T) {
	h, err := New("go", "monokai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := buffer.NewBufferFromString("package main\n\nfunc main() {}\n")

	if err := h.Apply(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := b.ColorSpans(buffer.NewRange(0, b.Len()))
	if len(spans) == 0 {
		t.Fatal("expected color spans")
	}
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > b.Len() || sp.Start >= sp.End {
			t.Errorf("span out of bounds: %v", sp)
		}
	}

	want, ok := ToColorful(styles.Get("monokai").Get(chroma.KeywordNamespace).Colour)
	if !ok {
		t.Fatal("monokai should color namespace keywords")
	}
	got, ok := b.ColorAt(0)
	if !ok || got != want {
		t.Errorf("expected keyword color %v at 0, got %v %v", want, got, ok)
	}
}

func TestApplyColorsFollowEdits(t *testing.T) {
	h, err := New("go", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := buffer.NewBufferFromString("package main\n")
	if err := h.Apply(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, _ := b.ColorAt(0)

	b.Insert(0, "// x\n")

	after, ok := b.ColorAt(5)
	if !ok || after != before {
		t.Errorf("expected keyword color to move with the text, got %v %v", after, ok)
	}
}

func TestToColorful(t *testing.T) {
	c, ok := ToColorful(chroma.NewColour(255, 0, 51))
	if !ok {
		t.Fatal("expected set colour")
	}
	if c.Hex() != "#ff0033" {
		t.Errorf("expected #ff0033, got %s", c.Hex())
	}

	if _, ok := ToColorful(chroma.Colour(0)); ok {
		t.Error("unset colour should report false")
	}
}

func TestThemeText(t *testing.T) {
	tc, err := ThemeText("monokai")
	if err != nil {
		t.Fatal(err)
	}
	if !tc.HasBackground || tc.Background.Hex() != "#272822" {
		t.Errorf("expected monokai background #272822, got %s (%t)", tc.Background.Hex(), tc.HasBackground)
	}

	if _, err := ThemeText("no-such-theme"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("expected ErrUnknownTheme, got %v", err)
	}
}

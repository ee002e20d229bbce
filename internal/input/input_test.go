package input

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caret/internal/app"
	"github.com/dshills/caret/internal/engine/view"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"a", Chord{Key: tcell.KeyRune, Rune: 'a'}},
		{"A", Chord{Key: tcell.KeyRune, Rune: 'A'}},
		{"Shift+a", Chord{Key: tcell.KeyRune, Rune: 'A'}},
		{"Ctrl+S", Chord{Key: tcell.KeyRune, Rune: 's', Mod: tcell.ModCtrl}},
		{"<C-s>", Chord{Key: tcell.KeyRune, Rune: 's', Mod: tcell.ModCtrl}},
		{"ctrl+alt+x", Chord{Key: tcell.KeyRune, Rune: 'x', Mod: tcell.ModCtrl | tcell.ModAlt}},
		{"Ctrl++", Chord{Key: tcell.KeyRune, Rune: '+', Mod: tcell.ModCtrl}},
		{"Space", Chord{Key: tcell.KeyRune, Rune: ' '}},
		{"Enter", Chord{Key: tcell.KeyEnter}},
		{"<CR>", Chord{Key: tcell.KeyEnter}},
		{"Shift+Left", Chord{Key: tcell.KeyLeft, Mod: tcell.ModShift}},
		{"<S-Left>", Chord{Key: tcell.KeyLeft, Mod: tcell.ModShift}},
		{"pgdn", Chord{Key: tcell.KeyPgDn}},
		{"F5", Chord{Key: tcell.KeyF5}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseChord(tt.spec)
			if err != nil {
				t.Fatalf("ParseChord(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseChord(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseChordErrors(t *testing.T) {
	if _, err := ParseChord("  "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
	for _, spec := range []string{"Hyper+x", "Ctrl+", "abc", "<X-a>", "<>"} {
		if _, err := ParseChord(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("ParseChord(%q): expected ErrInvalidSpec, got %v", spec, err)
		}
	}
}

func TestFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		spec string
	}{
		{"char", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "x"},
		{"shifted char", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), "A"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), "Ctrl+s"},
		{"shift arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), "Shift+Left"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "Tab"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromEvent(tt.ev)
			if want := MustParseChord(tt.spec); got != want {
				t.Errorf("FromEvent() = %v, want %v", got, want)
			}
		})
	}
}

func TestChordStringRoundTrip(t *testing.T) {
	for _, b := range NewKeymap().Bindings() {
		back, err := ParseChord(b.Chord.String())
		if err != nil {
			t.Errorf("%v: %v", b.Chord, err)
			continue
		}
		if back != b.Chord {
			t.Errorf("round trip of %v gave %v", b.Chord, back)
		}
	}
}

func TestDefaultBindingsParse(t *testing.T) {
	k := NewKeymap()
	if got, want := len(k.Bindings()), len(DefaultBindings()); got != want {
		t.Fatalf("expected %d bindings, got %d", want, got)
	}

	b, ok := k.Lookup(MustParseChord("Shift+End"))
	if !ok {
		t.Fatal("Shift+End should be bound")
	}
	if b.Command.Op != app.OpSelect || b.Command.Movement != view.RightOfLine {
		t.Errorf("unexpected Shift+End command %v", b.Command)
	}

	b, _ = k.Lookup(MustParseChord("Tab"))
	if b.Command.Op != app.OpWrite || b.Command.Text != "\t" {
		t.Errorf("unexpected Tab command %v", b.Command)
	}

	b, _ = k.Lookup(MustParseChord("Esc"))
	if b.Command.Op != app.OpCollapse {
		t.Errorf("unexpected Esc command %v", b.Command)
	}
}

func TestResolve(t *testing.T) {
	k := NewKeymap()

	cmd, ok := k.Resolve(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	if !ok || cmd.Op != app.OpSave {
		t.Errorf("Ctrl+S: expected save, got %v (%t)", cmd, ok)
	}

	cmd, ok = k.Resolve(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone))
	if !ok || cmd.Op != app.OpWrite || cmd.Text != "é" {
		t.Errorf("expected typed character to write itself, got %v", cmd)
	}

	if _, ok := k.Resolve(tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl)); ok {
		t.Error("Ctrl+G should be unbound")
	}
	if _, ok := k.Resolve(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt)); ok {
		t.Error("Alt+x should not type")
	}
}

func TestLoadOverrides(t *testing.T) {
	k := NewKeymap()
	err := k.Load(map[string]string{
		"Ctrl+G":  "move end_of_document",
		"Bad+Key": "save",
		"F2":      "explode",
	})
	if !errors.Is(err, ErrInvalidBinding) {
		t.Fatalf("expected ErrInvalidBinding, got %v", err)
	}
	if !strings.Contains(err.Error(), "explode") {
		t.Errorf("expected the bad command in the error, got %v", err)
	}

	cmd, ok := k.Resolve(tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl))
	if !ok || cmd.Movement != view.EndOfDocument {
		t.Errorf("expected Ctrl+G override, got %v", cmd)
	}

	if err := k.Load(map[string]string{"Ctrl+G": UnbindCommand, "Ctrl+S": " none "}); err != nil {
		t.Fatal(err)
	}
	for _, spec := range []string{"Ctrl+G", "Ctrl+S"} {
		if _, ok := k.Lookup(MustParseChord(spec)); ok {
			t.Errorf("%s should be unbound", spec)
		}
	}
}

func TestHelp(t *testing.T) {
	help := NewKeymap().Help()
	if !strings.Contains(help, "Ctrl+s") || !strings.Contains(help, "save") {
		t.Errorf("help is missing Ctrl+s save:\n%s", help)
	}
	if n := strings.Count(help, "\n"); n != len(DefaultBindings()) {
		t.Errorf("expected %d help lines, got %d", len(DefaultBindings()), n)
	}
}

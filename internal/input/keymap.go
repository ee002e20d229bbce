package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caret/internal/app"
)

// ErrInvalidBinding is returned for a binding whose key or command does not
// parse.
var ErrInvalidBinding = errors.New("invalid key binding")

// UnbindCommand as an override's command removes the key's binding.
const UnbindCommand = "none"

// Binding associates a key with a command line.
type Binding struct {
	Chord   Chord
	Command app.Command
	// Source is the command line the binding was made from.
	Source string
}

// DefaultBindings returns the built-in bindings as key specification to
// command line.
func DefaultBindings() map[string]string {
	return map[string]string{
		"Left":        "move left",
		"Right":       "move right",
		"Up":          "move up",
		"Down":        "move down",
		"Ctrl+Left":   "move left_word",
		"Ctrl+Right":  "move right_word",
		"Alt+Up":      "move up_exact_position",
		"Alt+Down":    "move down_exact_position",
		"Home":        "move left_of_line",
		"End":         "move right_of_line",
		"Alt+Left":    "move start_of_paragraph",
		"Alt+Right":   "move end_of_paragraph",
		"PageUp":      "move up_page",
		"PageDown":    "move down_page",
		"Ctrl+Home":   "move start_of_document",
		"Ctrl+End":    "move end_of_document",
		"Shift+Left":  "select left",
		"Shift+Right": "select right",
		"Shift+Up":    "select up",
		"Shift+Down":  "select down",
		"Shift+Home":  "select left_of_line",
		"Shift+End":   "select right_of_line",

		"Backspace": "delete left",
		"Delete":    "delete right",
		"Ctrl+W":    "delete left_word",
		"Ctrl+K":    "delete end_of_paragraph_kill",
		"Enter":     "newline",
		"Tab":       `write "\t"`,

		"Ctrl+A": "select_all",
		"Esc":    "collapse",
		"Ctrl+S": "save",
		"Ctrl+R": "reload",
		"Ctrl+Q": "quit",
	}
}

// Keymap resolves key events to commands.
type Keymap struct {
	bindings map[Chord]Binding
}

// NewKeymap creates a keymap holding the default bindings.
func NewKeymap() *Keymap {
	k := &Keymap{bindings: make(map[Chord]Binding)}
	for spec, line := range DefaultBindings() {
		if err := k.bind(MustParseChord(spec), spec, line); err != nil {
			panic(err)
		}
	}
	return k
}

// Bind maps the key spec to the command line, replacing any existing
// binding for that key.
func (k *Keymap) Bind(spec, command string) error {
	c, err := ParseChord(spec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBinding, err)
	}
	return k.bind(c, spec, command)
}

func (k *Keymap) bind(c Chord, spec, command string) error {
	cmd, err := app.ParseCommand(command)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidBinding, spec, err)
	}
	k.bindings[c] = Binding{Chord: c, Command: cmd, Source: command}
	return nil
}

// Unbind removes the binding for spec.
func (k *Keymap) Unbind(spec string) error {
	c, err := ParseChord(spec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBinding, err)
	}
	delete(k.bindings, c)
	return nil
}

// Load applies overrides from configuration. A command of UnbindCommand
// removes the key's binding. Every entry is tried; the returned error joins
// all failures.
func (k *Keymap) Load(overrides map[string]string) error {
	specs := make([]string, 0, len(overrides))
	for spec := range overrides {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	var errs []error
	for _, spec := range specs {
		var err error
		if strings.TrimSpace(overrides[spec]) == UnbindCommand {
			err = k.Unbind(spec)
		} else {
			err = k.Bind(spec, overrides[spec])
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the binding for chord c.
func (k *Keymap) Lookup(c Chord) (Binding, bool) {
	b, ok := k.bindings[c]
	return b, ok
}

// Resolve returns the command for a key event. Unbound printable
// characters typed without Ctrl, Alt or Meta write themselves.
func (k *Keymap) Resolve(ev *tcell.EventKey) (app.Command, bool) {
	c := FromEvent(ev)
	if b, ok := k.Lookup(c); ok {
		return b.Command, true
	}
	if c.Key == tcell.KeyRune && c.Mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 && unicode.IsPrint(c.Rune) {
		return app.Command{Op: app.OpWrite, Text: string(c.Rune)}, true
	}
	return app.Command{}, false
}

// Bindings returns every binding sorted by key.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}

// Help renders the bindings one per line.
func (k *Keymap) Help() string {
	var sb strings.Builder
	for _, b := range k.Bindings() {
		fmt.Fprintf(&sb, "%-14s %s\n", b.Chord, b.Source)
	}
	return sb.String()
}

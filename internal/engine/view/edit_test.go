package view

import (
	"testing"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/selection"
)

func TestWriteMultiCursorLines(t *testing.T) {
	rec := &recorder{}
	v := newView("ab\ncd", WithObserver(rec))
	v.SetCursor(0)
	v.AddCursor(3)

	v.Write("X\nY")

	if got := v.Buffer().Text(); got != "Xab\nYcd" {
		t.Errorf("expected %q, got %q", "Xab\nYcd", got)
	}
	expectCarets(t, v, 1, 5)
	if len(rec.changes) != 2 {
		t.Errorf("expected 2 content changes, got %d", len(rec.changes))
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		carets []ByteOffset
		write  string
		want   string
		after  []ByteOffset
	}{
		{"single caret keeps newlines", "ab", []ByteOffset{1}, "x\ny\n", "ax\ny\nb", []ByteOffset{5}},
		{"same text everywhere", "ab\ncd", []ByteOffset{0, 3}, "Z", "Zab\nZcd", []ByteOffset{1, 5}},
		{"trailing newline ignored", "ab\ncd", []ByteOffset{0, 3}, "X\nY\n", "Xab\nYcd", []ByteOffset{1, 5}},
		{"fewer lines than regions", "a\nb\nc", []ByteOffset{0, 2, 4}, "X\nY", "Xa\nYb\nc", []ByteOffset{1, 4, 6}},
		{"more lines than regions", "a\nb", []ByteOffset{0, 2}, "X\nY\nZ", "Xa\nYb", []ByteOffset{1, 4}},
		{"crlf lines", "ab\ncd", []ByteOffset{0, 3}, "X\r\nY\r\n", "Xab\nYcd", []ByteOffset{1, 5}},
		{"cr lines", "ab\ncd", []ByteOffset{0, 3}, "X\rY", "Xab\nYcd", []ByteOffset{1, 5}},
		{"single caret crlf", "ab", []ByteOffset{1}, "x\r\ny", "ax\nyb", []ByteOffset{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(tt.text)
			v.SetCursor(tt.carets[0])
			for _, c := range tt.carets[1:] {
				v.AddCursor(c)
			}

			v.Write(tt.write)

			if got := v.Buffer().Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			expectCarets(t, v, tt.after...)
		})
	}
}

func TestWriteCRLFBuffer(t *testing.T) {
	buf := buffer.NewBufferFromString("ab\r\ncd", buffer.WithLineEnding(buffer.LineEndingCRLF))
	v := New(buf)
	v.SetCursor(0)
	v.AddCursor(4)

	v.Write("X\r\nY\r\n")

	if got := buf.Text(); got != "Xab\r\nYcd" {
		t.Errorf("expected %q, got %q", "Xab\r\nYcd", got)
	}
	expectCarets(t, v, 1, 6)
}

func TestCollapseSelection(t *testing.T) {
	v := newView("hello world")
	v.SelectRange(5, 0)
	v.AddCursor(8)

	v.CollapseSelection()

	expectCarets(t, v, 0, 8)
}

func TestWriteReplacesSelection(t *testing.T) {
	v := newView("hello world")
	v.SelectRange(0, 5)

	v.Write("bye")

	if got := v.Buffer().Text(); got != "bye world" {
		t.Errorf("expected %q, got %q", "bye world", got)
	}
	expectCarets(t, v, 3)
}

func TestDoDeleteOperation(t *testing.T) {
	t.Run("backspace with two carets", func(t *testing.T) {
		v := newView("abc")
		v.SetCursor(1)
		v.AddCursor(3)

		v.DoDeleteOperation(Left)

		if got := v.Buffer().Text(); got != "b" {
			t.Errorf("expected %q, got %q", "b", got)
		}
		expectCarets(t, v, 0, 1)
	})

	t.Run("selection is deleted as is", func(t *testing.T) {
		v := newView("hello")
		v.SelectRange(1, 3)

		v.DoDeleteOperation(Right)

		if got := v.Buffer().Text(); got != "hlo" {
			t.Errorf("expected %q, got %q", "hlo", got)
		}
		expectCarets(t, v, 1)
	})

	t.Run("delete at end does nothing", func(t *testing.T) {
		rec := &recorder{}
		v := newView("abc", WithObserver(rec))
		v.SetCursor(3)
		rev := v.Buffer().RevisionID()

		v.DoDeleteOperation(Right)

		if got := v.Buffer().Text(); got != "abc" {
			t.Errorf("expected %q, got %q", "abc", got)
		}
		if v.Buffer().RevisionID() != rev {
			t.Error("revision should not change")
		}
		if len(rec.changes) != 0 {
			t.Errorf("expected no content changes, got %v", rec.changes)
		}
		expectCarets(t, v, 3)
	})

	t.Run("kill to end of line", func(t *testing.T) {
		v := newView("ab\ncd")
		v.SetCursor(0)

		v.DoDeleteOperation(EndOfParagraphKill)
		if got := v.Buffer().Text(); got != "\ncd" {
			t.Fatalf("expected %q, got %q", "\ncd", got)
		}

		v.DoDeleteOperation(EndOfParagraphKill)
		if got := v.Buffer().Text(); got != "cd" {
			t.Errorf("expected %q, got %q", "cd", got)
		}
	})
}

func TestSelectedText(t *testing.T) {
	v := newView("ab\ncd")
	v.SetSelection(selection.NewGroup(selection.New(0, 1), selection.New(5, 3)))

	if got := v.SelectedText(); got != "a\ncd" {
		t.Errorf("expected %q, got %q", "a\ncd", got)
	}
}

func TestRemoveSelection(t *testing.T) {
	v := newView("hello world")
	v.SelectRange(5, 11)

	v.RemoveSelection()

	if got := v.Buffer().Text(); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	expectCarets(t, v, 5)
}

func TestApplyChangeShiftsSelection(t *testing.T) {
	rec := &recorder{}
	v := newView("hello world", WithObserver(rec))
	v.SetCursor(6)

	v.ApplyChange(ChangeReplace(buffer.NewRange(0, 0), "XX"))

	if got := v.Buffer().Text(); got != "XXhello world" {
		t.Errorf("expected %q, got %q", "XXhello world", got)
	}
	expectCarets(t, v, 8)
	if len(rec.changes) != 1 || rec.changes[0].NewText != "XX" {
		t.Errorf("expected one change inserting XX, got %v", rec.changes)
	}
}

func TestApplyChangeOverCaret(t *testing.T) {
	v := newView("hello world")
	v.SetCursor(3)

	v.ApplyChange(ChangeReplace(buffer.NewRange(1, 5), "i"))

	if got := v.Buffer().Text(); got != "hi world" {
		t.Errorf("expected %q, got %q", "hi world", got)
	}
	expectCarets(t, v, 2)
}

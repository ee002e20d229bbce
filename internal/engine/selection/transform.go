package selection

import "github.com/dshills/caret/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// Transform returns the selection with both ends updated for edit. The
// remembered column is dropped when the selection moves.
func (s Selection) Transform(edit Edit) Selection {
	out := s
	out.Start = TransformOffset(s.Start, edit)
	out.End = TransformOffset(s.End, edit)
	if out.Equals(s) {
		return s
	}
	return out.WithoutColumn()
}

// Transform returns a new group with every region updated for edit.
// Regions that collide afterwards are merged.
func (g *Group) Transform(edit Edit) *Group {
	out := &Group{regions: make([]Selection, 0, len(g.regions))}
	for _, r := range g.regions {
		out.AddRegion(r.Transform(edit))
	}
	return out
}

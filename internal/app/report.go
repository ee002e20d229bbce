package app

import (
	"github.com/tidwall/sjson"
)

// Report renders the session state as JSON: buffer identity and size, the
// viewport, every selection region with its line and column, the selected
// text and command metrics.
func (s *Session) Report() (string, error) {
	e := s.doc.Engine
	snap := e.Snapshot()
	regions := e.SelRegions()
	m := s.metrics.Snapshot()

	fields := []struct {
		path  string
		value any
	}{
		{"document.name", s.doc.Name()},
		{"document.path", s.doc.Path()},
		{"document.encoding", s.doc.Encoding().String()},
		{"document.modified", s.doc.IsModified()},
		{"buffer.id", snap.BufferID().String()},
		{"buffer.revision", uint64(snap.RevisionID())},
		{"buffer.length", int64(snap.Len())},
		{"buffer.lines", snap.LineCount()},
		{"buffer.colors", len(snap.Colors())},
		{"buffer.read_only", e.IsReadOnly()},
		{"viewport.first_line", e.FirstLine()},
		{"viewport.height", e.Height()},
		{"selected_text", e.SelectedText()},
		{"metrics.commands", m.Commands()},
		{"metrics.failures", m.Failures},
		{"metrics.avg_ns", m.AvgNs},
	}

	out := `{"regions":[]}`
	var err error
	for _, f := range fields {
		if out, err = sjson.Set(out, f.path, f.value); err != nil {
			return "", err
		}
	}

	for _, r := range regions {
		p := e.OffsetToPoint(r.End)
		region := map[string]any{
			"start":  int64(r.Start),
			"end":    int64(r.End),
			"caret":  r.IsCaret(),
			"line":   p.Line,
			"column": int64(p.Column),
		}
		if out, err = sjson.Set(out, "regions.-1", region); err != nil {
			return "", err
		}
	}
	return out, nil
}

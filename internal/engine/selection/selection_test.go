package selection

import (
	"math/rand"
	"testing"

	"github.com/dshills/caret/internal/engine/buffer"
)

func TestSelectionBasics(t *testing.T) {
	s := New(7, 3)

	if s.Min() != 3 || s.Max() != 7 {
		t.Errorf("expected [3,7), got min %d max %d", s.Min(), s.Max())
	}
	if s.IsCaret() {
		t.Error("selection should not be a caret")
	}
	if s.IsForward() {
		t.Error("selection should be backward")
	}
	if s.Len() != 4 {
		t.Errorf("expected length 4, got %d", s.Len())
	}
	if !NewCaret(5).IsCaret() {
		t.Error("NewCaret should be a caret")
	}
}

func TestSelectionColumn(t *testing.T) {
	s := NewCaret(4)
	if _, ok := s.Column(); ok {
		t.Error("new selection should have no column")
	}

	s = s.WithColumn(8)
	if col, ok := s.Column(); !ok || col != 8 {
		t.Errorf("expected column 8, got %d %v", col, ok)
	}
	if _, ok := s.WithoutColumn().Column(); ok {
		t.Error("WithoutColumn should clear the column")
	}
}

func TestShouldMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Selection
		want bool
	}{
		{"overlap", New(0, 5), New(3, 8), true},
		{"touching ranges", New(3, 5), New(5, 7), false},
		{"caret at range end", New(3, 5), NewCaret(5), true},
		{"range after caret", NewCaret(5), New(5, 7), true},
		{"same caret", NewCaret(5), NewCaret(5), true},
		{"disjoint", New(0, 2), New(4, 6), false},
		{"distinct carets", NewCaret(2), NewCaret(3), false},
		{"caret inside range", New(2, 8), NewCaret(4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.ShouldMerge(tt.b); got != tt.want {
				t.Errorf("ShouldMerge(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMergeWithKeepsDirection(t *testing.T) {
	forward := New(3, 5).MergeWith(New(7, 4))
	if forward.Start != 3 || forward.End != 7 {
		t.Errorf("expected forward [3→7], got %v", forward)
	}

	backward := New(5, 3).MergeWith(New(4, 7))
	if backward.Start != 7 || backward.End != 3 {
		t.Errorf("expected backward [7←3], got %v", backward)
	}

	withCol := NewCaret(4).WithColumn(2).MergeWith(New(2, 6))
	if _, ok := withCol.Column(); ok {
		t.Error("merge should drop the remembered column")
	}
}

func TestAddRegionCaretMergesIntoTouchingRange(t *testing.T) {
	g := NewGroup(New(3, 5))
	g.AddRegion(NewCaret(5))

	if g.Len() != 1 {
		t.Fatalf("expected 1 region, got %d: %v", g.Len(), g)
	}
	if r := g.At(0); r.Min() != 3 || r.Max() != 5 {
		t.Errorf("expected [3,5), got %v", r)
	}
}

func TestAddRegionTouchingRangesStaySeparate(t *testing.T) {
	g := NewGroup(New(3, 5))
	g.AddRegion(New(5, 7))

	if g.Len() != 2 {
		t.Fatalf("expected 2 regions, got %d: %v", g.Len(), g)
	}
	if !g.Valid() {
		t.Errorf("group invariant violated: %v", g)
	}
}

func TestAddRegionIdempotent(t *testing.T) {
	for _, r := range []Selection{NewCaret(4), New(2, 9), New(9, 2)} {
		g := NewGroup(r)
		g.AddRegion(r)
		if g.Len() != 1 {
			t.Fatalf("expected 1 region after adding %v twice, got %v", r, g)
		}
		if got := g.At(0); got.Min() != r.Min() || got.Max() != r.Max() {
			t.Errorf("expected span of %v, got %v", r, got)
		}
	}
}

func TestAddRegionMergesSeveral(t *testing.T) {
	g := NewGroup(NewCaret(1), New(4, 6), New(8, 10), NewCaret(14))
	if g.Len() != 4 {
		t.Fatalf("expected 4 regions, got %v", g)
	}

	g.AddRegion(New(5, 9))
	want := []Selection{NewCaret(1), New(4, 10), NewCaret(14)}
	got := g.Regions()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if !got[i].Equals(want[i]) {
			t.Errorf("region %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestAddRegionInsertsInOrder(t *testing.T) {
	g := NewGroup(NewCaret(10), NewCaret(2), NewCaret(6))

	want := []ByteOffset{2, 6, 10}
	for i, w := range want {
		if g.At(i).End != w {
			t.Errorf("region %d: expected caret at %d, got %v", i, w, g.At(i))
		}
	}
}

func TestSearch(t *testing.T) {
	g := NewGroup(New(0, 2), New(4, 6), New(8, 10))

	tests := []struct {
		offset ByteOffset
		want   int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{6, 1},
		{7, 2},
		{10, 2},
		{11, 3},
	}
	for _, tt := range tests {
		if got := g.Search(tt.offset); got != tt.want {
			t.Errorf("Search(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}

	if NewGroup().Search(5) != 0 {
		t.Error("Search on an empty group should return 0")
	}
}

func TestGroupInvariantRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		g := NewGroup()
		for i := 0; i < 30; i++ {
			a := ByteOffset(rng.Intn(60))
			b := a
			if rng.Intn(2) == 0 {
				b = ByteOffset(rng.Intn(60))
			}
			r := New(a, b)
			g.AddRegion(r)

			if !g.Valid() {
				t.Fatalf("invariant violated after adding %v: %v", r, g)
			}
			if !covered(g, r) {
				t.Fatalf("region %v not covered by %v", r, g)
			}
		}
	}
}

// covered reports whether some region of g spans all of r.
func covered(g *Group, r Selection) bool {
	for _, x := range g.Regions() {
		if x.Min() <= r.Min() && r.Max() <= x.Max() {
			return true
		}
	}
	return false
}

func TestAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	NewCaretGroup(0).At(1)
}

func TestGroupCloneIsIndependent(t *testing.T) {
	g := NewGroup(NewCaret(1))
	c := g.Clone()
	c.AddRegion(NewCaret(5))

	if g.Len() != 1 || c.Len() != 2 {
		t.Errorf("clone should not share regions: %v vs %v", g, c)
	}
	if g.Equal(c) {
		t.Error("groups with different regions should not be equal")
	}
}

func TestTransformOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset ByteOffset
		edit   Edit
		want   ByteOffset
	}{
		{"insert before", 10, buffer.NewInsert(2, "abc"), 13},
		{"insert at offset", 10, buffer.NewInsert(10, "abc"), 13},
		{"insert after", 10, buffer.NewInsert(12, "abc"), 10},
		{"delete before", 10, buffer.NewDelete(2, 5), 7},
		{"delete spanning", 10, buffer.NewDelete(8, 12), 8},
		{"replace spanning", 10, buffer.NewEdit(buffer.NewRange(8, 12), "xy"), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, tt.edit); got != tt.want {
				t.Errorf("TransformOffset(%d, %v) = %d, want %d", tt.offset, tt.edit, got, tt.want)
			}
		})
	}
}

func TestGroupTransformMerges(t *testing.T) {
	g := NewGroup(NewCaret(2), NewCaret(6))
	out := g.Transform(buffer.NewDelete(1, 7))

	if out.Len() != 1 || out.At(0).End != 1 {
		t.Errorf("expected a single caret at 1, got %v", out)
	}
}

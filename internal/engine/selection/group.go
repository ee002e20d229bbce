package selection

import (
	"fmt"
	"slices"
	"strings"
)

// Group is an ordered set of selections sorted by Min.
//
// Adjacent regions never overlap: regions[i].Max() <= regions[i+1].Min(),
// and the inequality is strict when either region is a caret. AddRegion is
// the only way regions enter a group, so the invariant always holds.
type Group struct {
	regions []Selection
}

// NewGroup creates a group by adding each region in turn.
func NewGroup(regions ...Selection) *Group {
	g := &Group{regions: make([]Selection, 0, len(regions))}
	for _, r := range regions {
		g.AddRegion(r)
	}
	return g
}

// NewCaretGroup creates a group holding a single caret.
func NewCaretGroup(offset ByteOffset) *Group {
	return NewGroup(NewCaret(offset))
}

// Len returns the number of regions.
func (g *Group) Len() int {
	return len(g.regions)
}

// IsEmpty returns true if the group holds no regions.
func (g *Group) IsEmpty() bool {
	return len(g.regions) == 0
}

// At returns the region at index i. It panics if i is out of range: an
// invalid index means the caller's view of the group is out of date.
func (g *Group) At(i int) Selection {
	if i < 0 || i >= len(g.regions) {
		panic(fmt.Sprintf("selection: region index %d out of range [0,%d)", i, len(g.regions)))
	}
	return g.regions[i]
}

// First returns the lowest region.
func (g *Group) First() (Selection, bool) {
	if len(g.regions) == 0 {
		return Selection{}, false
	}
	return g.regions[0], true
}

// Last returns the highest region.
func (g *Group) Last() (Selection, bool) {
	if len(g.regions) == 0 {
		return Selection{}, false
	}
	return g.regions[len(g.regions)-1], true
}

// Regions returns a copy of all regions in order.
func (g *Group) Regions() []Selection {
	return slices.Clone(g.regions)
}

// Clone returns an independent copy of the group.
func (g *Group) Clone() *Group {
	return &Group{regions: slices.Clone(g.regions)}
}

// Carets returns true if every region is a caret.
func (g *Group) Carets() bool {
	for _, r := range g.regions {
		if !r.IsCaret() {
			return false
		}
	}
	return true
}

// Equal returns true if both groups hold the same regions.
func (g *Group) Equal(other *Group) bool {
	return slices.EqualFunc(g.regions, other.regions, Selection.Equals)
}

// Search returns the index of the first region whose Max is at least
// offset, or Len() if there is none.
func (g *Group) Search(offset ByteOffset) int {
	n := len(g.regions)
	if n == 0 || offset > g.regions[n-1].Max() {
		return n
	}
	ix, _ := slices.BinarySearchFunc(g.regions, offset, func(r Selection, off ByteOffset) int {
		switch {
		case r.Max() < off:
			return -1
		case r.Max() > off:
			return 1
		}
		return 0
	})
	return ix
}

// AddRegion inserts r, merging it with every region it should merge with.
// Appending past the last region is O(1).
func (g *Group) AddRegion(r Selection) {
	ix := g.Search(r.Min())
	if ix == len(g.regions) {
		g.regions = append(g.regions, r)
		return
	}

	end := ix
	if g.regions[ix].Min() <= r.Min() {
		if g.regions[ix].ShouldMerge(r) {
			r = r.MergeWith(g.regions[ix])
		} else {
			ix++
		}
		end++
	}
	for end < len(g.regions) && r.ShouldMerge(g.regions[end]) {
		r = r.MergeWith(g.regions[end])
		end++
	}

	if ix == end {
		g.regions = slices.Insert(g.regions, ix, r)
		return
	}
	g.regions[ix] = r
	g.regions = slices.Delete(g.regions, ix+1, end)
}

// Valid reports whether the ordering invariant holds.
func (g *Group) Valid() bool {
	for i := 1; i < len(g.regions); i++ {
		a, b := g.regions[i-1], g.regions[i]
		if a.Max() > b.Min() {
			return false
		}
		if (a.IsCaret() || b.IsCaret()) && a.Max() == b.Min() {
			return false
		}
	}
	return true
}

// String returns a string representation of the group.
func (g *Group) String() string {
	parts := make([]string, len(g.regions))
	for i, r := range g.regions {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

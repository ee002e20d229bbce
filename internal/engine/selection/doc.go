// Package selection models the regions of text a user has selected.
//
// A Selection is a directional span: Start is where it began and End is
// the active point that moves. A zero-width selection is a caret. A Group
// keeps regions sorted and non-overlapping, merging on insertion:
//
//   - overlapping regions always merge
//   - regions that merely touch merge only if one of them is a caret
//
// Selections also remember a column for vertical movement so that moving
// through a short line does not lose the horizontal target.
package selection

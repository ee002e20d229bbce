package rope

import "strings"

// node is a rope tree node. Leaves (height 0) hold text; internal nodes hold
// children that all share the same height.
type node struct {
	height   int
	summary  TextSummary
	text     string
	children []*node
}

func newLeaf(s string) *node {
	return &node{text: s, summary: ComputeSummary(s)}
}

func newInternal(children []*node) *node {
	n := &node{height: children[0].height + 1, children: children}
	for _, c := range children {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) len() ByteOffset {
	if n == nil {
		return 0
	}
	return n.summary.Bytes
}

// isWellFilled reports whether n may sit next to siblings without merging.
func (n *node) isWellFilled() bool {
	if n.isLeaf() {
		return len(n.text) >= MinChunkSize
	}
	return len(n.children) >= MinChildren
}

// buildFromChunks builds a balanced tree bottom-up.
func buildFromChunks(chunks []string) *node {
	if len(chunks) == 0 {
		return nil
	}

	nodes := make([]*node, len(chunks))
	for i, c := range chunks {
		nodes[i] = newLeaf(c)
	}
	for len(nodes) > 1 {
		parents := make([]*node, 0, (len(nodes)+MaxChildren-1)/MaxChildren)
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			group := make([]*node, end-i)
			copy(group, nodes[i:end])
			parents = append(parents, newInternal(group))
		}
		nodes = parents
	}
	return nodes[0]
}

// concat joins two trees, keeping all leaves at the same depth.
func concat(a, b *node) *node {
	if a.len() == 0 {
		return b
	}
	if b.len() == 0 {
		return a
	}

	switch {
	case a.height < b.height:
		if a.height == b.height-1 && a.isWellFilled() {
			return mergeNodes([]*node{a}, b.children)
		}
		joined := concat(a, b.children[0])
		if joined.height == b.height-1 {
			return mergeNodes([]*node{joined}, b.children[1:])
		}
		return mergeNodes(joined.children, b.children[1:])

	case a.height > b.height:
		last := len(a.children) - 1
		if b.height == a.height-1 && b.isWellFilled() {
			return mergeNodes(a.children, []*node{b})
		}
		joined := concat(a.children[last], b)
		if joined.height == a.height-1 {
			return mergeNodes(a.children[:last], []*node{joined})
		}
		return mergeNodes(a.children[:last], joined.children)

	default:
		if a.isWellFilled() && b.isWellFilled() {
			return newInternal([]*node{a, b})
		}
		if a.isLeaf() {
			return mergeLeaves(a, b)
		}
		return mergeNodes(a.children, b.children)
	}
}

// mergeNodes makes a parent (or two) out of sibling lists of equal height.
func mergeNodes(left, right []*node) *node {
	n := len(left) + len(right)
	all := make([]*node, 0, n)
	all = append(all, left...)
	all = append(all, right...)
	if n <= MaxChildren {
		return newInternal(all)
	}

	at := min(MaxChildren, n-MinChildren)
	return newInternal([]*node{
		newInternal(all[:at:at]),
		newInternal(all[at:]),
	})
}

func mergeLeaves(a, b *node) *node {
	if a.isWellFilled() && b.isWellFilled() {
		return newInternal([]*node{a, b})
	}
	s := a.text + b.text
	if len(s) <= MaxChunkSize {
		return newLeaf(s)
	}
	at := chunkBoundary(s, len(s)/2)
	return newInternal([]*node{newLeaf(s[:at]), newLeaf(s[at:])})
}

// split divides the tree at offset. Either side may be nil.
func (n *node) split(offset ByteOffset) (*node, *node) {
	if offset <= 0 {
		return nil, n
	}
	if offset >= n.len() {
		return n, nil
	}
	if n.isLeaf() {
		return newLeaf(n.text[:offset]), newLeaf(n.text[offset:])
	}

	for i, c := range n.children {
		if offset < c.len() {
			cl, cr := c.split(offset)
			var left, right *node
			for _, sib := range n.children[:i] {
				left = concat(left, sib)
			}
			left = concat(left, cl)
			right = cr
			for _, sib := range n.children[i+1:] {
				right = concat(right, sib)
			}
			return left, right
		}
		offset -= c.len()
	}
	return n, nil
}

// unwrap strips single-child internal nodes from the top of a tree.
func unwrap(n *node) *node {
	for n != nil && !n.isLeaf() && len(n.children) == 1 {
		n = n.children[0]
	}
	if n != nil && n.len() == 0 {
		return nil
	}
	return n
}

func (n *node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if n.isLeaf() {
		sb.WriteString(n.text[start:end])
		return
	}
	for _, c := range n.children {
		size := c.len()
		if start < size && end > 0 {
			c.appendRange(sb, max(start, 0), min(end, size))
		}
		start -= size
		end -= size
		if end <= 0 {
			return
		}
	}
}

// offsetAfterNewline returns the offset just past the k-th newline (1-based).
// The caller guarantees 1 <= k <= n.summary.Lines.
func (n *node) offsetAfterNewline(k int) ByteOffset {
	if n.isLeaf() {
		seen := 0
		for i := 0; i < len(n.text); i++ {
			if n.text[i] == '\n' {
				seen++
				if seen == k {
					return ByteOffset(i + 1)
				}
			}
		}
		return n.len()
	}

	var base ByteOffset
	for _, c := range n.children {
		if k <= c.summary.Lines {
			return base + c.offsetAfterNewline(k)
		}
		k -= c.summary.Lines
		base += c.len()
	}
	return base
}

// newlinesBefore counts the newlines in [0, offset).
func (n *node) newlinesBefore(offset ByteOffset) int {
	if offset >= n.len() {
		return n.summary.Lines
	}
	if n.isLeaf() {
		return strings.Count(n.text[:offset], "\n")
	}

	lines := 0
	for _, c := range n.children {
		if offset < c.len() {
			return lines + c.newlinesBefore(offset)
		}
		offset -= c.len()
		lines += c.summary.Lines
	}
	return lines
}

func (n *node) byteAt(offset ByteOffset) byte {
	for !n.isLeaf() {
		for _, c := range n.children {
			if offset < c.len() {
				n = c
				break
			}
			offset -= c.len()
		}
	}
	return n.text[offset]
}


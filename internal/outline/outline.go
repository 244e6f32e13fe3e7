package outline

// RootLevel is the level of the synthetic root; every real heading is deeper.
const RootLevel = 0

// Node is one entry of a document outline.
type Node struct {
	Level    int     // Heading level (1-6); RootLevel for the synthetic root
	Title    string  // Heading text (document title for the root)
	ID       string  // Fragment id; empty only for the root
	Children []*Node // Sub-headings in document order
}

// Builder rebuilds the heading hierarchy from a flat, document-order stream
// of (level, title, id) triples.
type Builder struct {
	root  *Node
	stack []*Node // root ... cursor
	count int
}

// NewBuilder returns a builder whose cursor sits on a fresh root titled title.
func NewBuilder(title string) *Builder {
	root := &Node{Level: RootLevel, Title: title}
	return &Builder{
		root:  root,
		stack: []*Node{root},
	}
}

// Insert places the next heading and moves the cursor onto it.
//
// The cursor climbs while it is deeper than level. A heading at the cursor's
// own level becomes its sibling; anything deeper becomes its last child, so
// skipped levels (h2 straight to h5) nest directly.
func (b *Builder) Insert(level int, title, id string) *Node {
	if level <= RootLevel {
		level = RootLevel + 1
	}
	for b.top().Level > level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if b.top().Level == level {
		b.stack = b.stack[:len(b.stack)-1]
	}

	n := &Node{Level: level, Title: title, ID: id}
	parent := b.top()
	parent.Children = append(parent.Children, n)
	b.stack = append(b.stack, n)
	b.count++
	return n
}

// Root returns the synthetic root.
func (b *Builder) Root() *Node {
	return b.root
}

// Len returns the number of headings inserted so far.
func (b *Builder) Len() int {
	return b.count
}

// Cursor returns the most recently inserted node, or the root.
func (b *Builder) Cursor() *Node {
	return b.top()
}

func (b *Builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

// Walk visits n and its descendants depth-first in document order.
func Walk(n *Node, fn func(n *Node, depth int)) {
	var walk func(*Node, int)
	walk = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
}

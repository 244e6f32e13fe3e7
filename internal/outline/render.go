package outline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContainerID is the id of the element wrapping a rendered outline.
const ContainerID = "toc"

// Render serialises the tree rooted at root as nested lists inside a
// div#toc. With includeTitle the root itself becomes the single top-level
// item and its children nest under it; otherwise the root's children are the
// top-level items.
func Render(root *Node, includeTitle bool) string {
	container := element(atom.Div, html.Attribute{Key: "id", Val: ContainerID})

	switch {
	case includeTitle:
		ul := element(atom.Ul)
		ul.AppendChild(item(root))
		container.AppendChild(ul)
	case len(root.Children) > 0:
		container.AppendChild(list(root.Children))
	}

	var sb strings.Builder
	// Rendering an in-memory tree to a strings.Builder cannot fail.
	_ = html.Render(&sb, container)
	return sb.String()
}

func item(n *Node) *html.Node {
	li := element(atom.Li)
	a := element(atom.A,
		html.Attribute{Key: "class", Val: "toc-href"},
		html.Attribute{Key: "href", Val: "#" + n.ID},
		html.Attribute{Key: "title", Val: n.Title},
	)
	a.AppendChild(&html.Node{Type: html.TextNode, Data: n.Title})
	li.AppendChild(a)
	if len(n.Children) > 0 {
		li.AppendChild(list(n.Children))
	}
	return li
}

func list(nodes []*Node) *html.Node {
	ul := element(atom.Ul)
	for _, n := range nodes {
		ul.AppendChild(item(n))
	}
	return ul
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

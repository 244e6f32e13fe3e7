package outline

import (
	"fmt"
	"strings"
	"testing"
)

type heading struct {
	level int
	title string
}

func build(headings []heading) *Builder {
	b := NewBuilder("Doc")
	for _, h := range headings {
		b.Insert(h.level, h.title, strings.ToLower(h.title))
	}
	return b
}

// shape renders the tree as "Title[Child,Child[Grand]]" for compact assertions.
func shape(n *Node) string {
	var sb strings.Builder
	sb.WriteString(n.Title)
	if len(n.Children) > 0 {
		sb.WriteString("[")
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(shape(c))
		}
		sb.WriteString("]")
	}
	return sb.String()
}

func TestBuilder_SiblingsAndNesting(t *testing.T) {
	b := build([]heading{{1, "Intro"}, {2, "Background"}, {2, "Scope"}, {1, "Methods"}})
	if got, want := shape(b.Root()), "Doc[Intro[Background,Scope],Methods]"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if b.Len() != 4 {
		t.Errorf("expected 4 nodes, got %d", b.Len())
	}
}

func TestBuilder_SkippedLevelThenShallower(t *testing.T) {
	b := build([]heading{{2, "A"}, {5, "B"}, {3, "C"}})
	if got, want := shape(b.Root()), "Doc[A[B,C]]"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestBuilder_SkipDownAndBackToSameLevel(t *testing.T) {
	b := build([]heading{{2, "A"}, {5, "B"}, {2, "C"}})
	if got, want := shape(b.Root()), "Doc[A[B],C]"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestBuilder_FirstHeadingAlwaysRootChild(t *testing.T) {
	for level := 1; level <= 6; level++ {
		b := NewBuilder("Doc")
		n := b.Insert(level, "X", "x")
		if len(b.Root().Children) != 1 || b.Root().Children[0] != n {
			t.Errorf("level %d: expected first heading under root", level)
		}
	}
}

func TestBuilder_ShallowerThanEverythingSoFar(t *testing.T) {
	b := build([]heading{{3, "A"}, {4, "B"}, {1, "C"}, {2, "D"}})
	if got, want := shape(b.Root()), "Doc[A[B],C[D]]"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestBuilder_RepeatedLevel(t *testing.T) {
	b := build([]heading{{3, "A"}, {3, "B"}, {3, "C"}})
	if got, want := shape(b.Root()), "Doc[A,B,C]"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestBuilder_CursorTracksLastInsert(t *testing.T) {
	b := NewBuilder("Doc")
	if b.Cursor() != b.Root() {
		t.Fatal("expected cursor to start on root")
	}
	n := b.Insert(2, "A", "a")
	if b.Cursor() != n {
		t.Error("expected cursor on inserted node")
	}
}

func TestBuilder_NonPositiveLevelClamped(t *testing.T) {
	b := NewBuilder("Doc")
	b.Insert(1, "A", "a")
	n := b.Insert(0, "B", "b")
	if n.Level != 1 {
		t.Fatalf("expected clamped level 1, got %d", n.Level)
	}
	if got, want := shape(b.Root()), "Doc[A,B]"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestBuilder_LevelInvariants(t *testing.T) {
	sequences := [][]int{
		{1, 2, 3, 2, 1},
		{6, 1, 6, 2, 5, 3, 4},
		{2, 2, 5, 5, 1, 3},
		{4, 3, 2, 1},
	}
	for _, seq := range sequences {
		b := NewBuilder("Doc")
		for i, lvl := range seq {
			b.Insert(lvl, fmt.Sprintf("h%d", i), fmt.Sprintf("id%d", i))
		}
		if b.Root().Level != RootLevel {
			t.Fatalf("seq %v: root level %d", seq, b.Root().Level)
		}
		var order []string
		Walk(b.Root(), func(n *Node, depth int) {
			if depth == 0 {
				return
			}
			if n.Level < 1 {
				t.Errorf("seq %v: node %s has level %d", seq, n.Title, n.Level)
			}
			for _, c := range n.Children {
				if c.Level <= n.Level {
					t.Errorf("seq %v: child %s (level %d) not deeper than parent %s (level %d)",
						seq, c.Title, c.Level, n.Title, n.Level)
				}
			}
			order = append(order, n.Title)
		})
		// Pre-order traversal must reproduce source order.
		for i, title := range order {
			if title != fmt.Sprintf("h%d", i) {
				t.Errorf("seq %v: position %d holds %s", seq, i, title)
			}
		}
	}
}

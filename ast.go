package pego

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is the generic AST value a compiled grammar produces: a tagged,
// ordered tree over the matched input. A leaf node (no children) carries
// the literal text it matched; an interior node's text is empty and its
// meaning lives in its children.
type Node struct {
	Tag      string
	Text     string
	Children []*Node
	Pos      Range
}

// NewLeaf builds a childless Node carrying the literal text it matched.
func NewLeaf(tag, text string, pos Range) *Node {
	return &Node{Tag: tag, Text: text, Pos: pos}
}

// NewInterior builds a Node over an ordered list of children.
func NewInterior(tag string, children []*Node, pos Range) *Node {
	return &Node{Tag: tag, Children: children, Pos: pos}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// wrapRule implements the grammar compiler's tag-chain merging rule: a
// rule whose body reduced to exactly one child is folded into that
// child by prefixing its own name onto the child's tag chain
// ("rule|child|grandchild…") instead of adding another tree level; any
// other shape (zero or 2+ children) gets wrapped in a fresh interior node
// tagged with the rule's own name.
func wrapRule(ruleName string, children []*Node, pos Range) *Node {
	if len(children) == 1 {
		only := children[0]
		return &Node{
			Tag:      ruleName + "|" + only.Tag,
			Text:     only.Text,
			Children: only.Children,
			Pos:      pos,
		}
	}
	return NewInterior(ruleName, children, pos)
}

// Dump renders n as an indented debug tree, analogous in spirit to the
// prior implementation's tree printer but plain text — color highlighting,
// where wanted, belongs to the CLI layer instead of the library.
func Dump(n *Node) string {
	var b strings.Builder
	dumpNode(&b, n, "", true)
	return b.String()
}

func dumpNode(b *strings.Builder, n *Node, prefix string, last bool) {
	branch := "├── "
	cont := "│   "
	if last {
		branch = "└── "
		cont = "    "
	}
	if n.IsLeaf() {
		fmt.Fprintf(b, "%s%s%s %s (%s)\n", prefix, branch, n.Tag, strconv.Quote(n.Text), n.Pos)
		return
	}
	fmt.Fprintf(b, "%s%s%s (%s)\n", prefix, branch, n.Tag, n.Pos)
	childPrefix := prefix + cont
	for i, c := range n.Children {
		dumpNode(b, c, childPrefix, i == len(n.Children)-1)
	}
}

// Text concatenates every leaf's matched text under n, depth-first,
// reconstructing (a normalized form of) the substring n matched.
func Text(n *Node) string {
	var b strings.Builder
	collectText(&b, n)
	return b.String()
}

func collectText(b *strings.Builder, n *Node) {
	if n.IsLeaf() {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		collectText(b, c)
	}
}

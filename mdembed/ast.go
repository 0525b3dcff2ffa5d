package mdembed

import (
	"strconv"

	"github.com/rgonek/editor-embeds/embednode"
	"github.com/yuin/goldmark/ast"
)

// KindEmbed is the NodeKind of Embed.
var KindEmbed = ast.NewNodeKind("Embed")

// Embed is a block node standing for a video embed that replaced a
// paragraph holding only a link.
type Embed struct {
	ast.BaseBlock
	Node embednode.Node
}

// NewEmbed returns an Embed block for node.
func NewEmbed(node embednode.Node) *Embed {
	return &Embed{Node: node}
}

// Kind implements ast.Node.
func (n *Embed) Kind() ast.NodeKind {
	return KindEmbed
}

// Dump implements ast.Node.
func (n *Embed) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Type":  string(n.Node.Type),
		"Src":   n.Node.Attrs.Src,
		"Start": strconv.Itoa(n.Node.Attrs.Start),
	}, nil)
}

package mdembed

import (
	"fmt"
	"strings"

	"github.com/rgonek/editor-embeds/embednode"
	"github.com/rgonek/editor-embeds/videolink"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	priorityEmbedTransformer = 500
	priorityEmbedRenderer    = 500
	priorityDashRule         = 90
)

var warningsKey = parser.NewContextKey()

// Warnings returns the warnings collected in pc while parsing.
func Warnings(pc parser.Context) []embednode.Warning {
	warnings, _ := pc.Get(warningsKey).([]embednode.Warning)
	return warnings
}

func addWarning(pc parser.Context, warning embednode.Warning) {
	pc.Set(warningsKey, append(Warnings(pc), warning))
}

type embedExtension struct {
	ext *embednode.Extension
}

// NewEmbedExtension returns a goldmark extension that turns paragraphs
// holding nothing but a link to a supported video into embeds rendered
// through ext's node view.
func NewEmbedExtension(ext *embednode.Extension) goldmark.Extender {
	return &embedExtension{ext: ext}
}

func (e *embedExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&embedTransformer{ext: e.ext}, priorityEmbedTransformer),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&embedRenderer{ext: e.ext}, priorityEmbedRenderer),
		),
	)
}

type embedTransformer struct {
	ext *embednode.Extension
}

func (t *embedTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var paragraphs []*ast.Paragraph
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if paragraph, ok := node.(*ast.Paragraph); ok {
			paragraphs = append(paragraphs, paragraph)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, paragraph := range paragraphs {
		t.transformParagraph(paragraph, source, pc)
	}
}

func (t *embedTransformer) transformParagraph(paragraph *ast.Paragraph, source []byte, pc parser.Context) {
	destination, ok := soleLinkDestination(paragraph, source)
	if !ok || destination == "" {
		return
	}

	node, ok := t.ext.Insert(embednode.Attrs{Src: destination})
	if !ok {
		if videolink.IsProviderHost(destination) {
			addWarning(pc, embednode.Warning{
				Type:     embednode.WarningUnembeddableLink,
				NodeType: string(t.ext.Name()),
				Message:  fmt.Sprintf("link %q is not an embeddable video", destination),
			})
		}
		return
	}

	parent := paragraph.Parent()
	if parent == nil {
		return
	}
	parent.ReplaceChild(parent, paragraph, NewEmbed(node))
}

// soleLinkDestination returns the destination of the only link or autolink
// in paragraph. Whitespace text around it is ignored.
func soleLinkDestination(paragraph *ast.Paragraph, source []byte) (string, bool) {
	var destination string
	found := false
	for child := paragraph.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			if strings.TrimSpace(string(n.Segment.Value(source))) != "" {
				return "", false
			}
		case *ast.Link:
			if found {
				return "", false
			}
			destination, found = string(n.Destination), true
		case *ast.AutoLink:
			if found || n.AutoLinkType != ast.AutoLinkURL {
				return "", false
			}
			destination, found = string(n.URL(source)), true
		default:
			return "", false
		}
	}
	return strings.TrimSpace(destination), found
}

type embedRenderer struct {
	ext *embednode.Extension
}

func (r *embedRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEmbed, r.renderEmbed)
}

func (r *embedRenderer) renderEmbed(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	embed := node.(*Embed)
	out, err := r.ext.NodeView(embed.Node, nil).RenderHTML()
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(out)
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

const dashRuleLine = "—-"

type dashRule struct{}

// DashRule is a goldmark extension that reads a "—-" line as a thematic
// break. Editors that replace "--" with an em dash produce that sequence
// when the user types "---". Text around the line stays in paragraphs.
var DashRule goldmark.Extender = &dashRule{}

func (e *dashRule) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithParagraphTransformers(
			util.Prioritized(&dashRuleTransformer{}, priorityDashRule),
		),
	)
}

type dashRuleTransformer struct{}

func (t *dashRuleTransformer) Transform(node *ast.Paragraph, reader text.Reader, pc parser.Context) {
	parent := node.Parent()
	if parent == nil {
		return
	}
	source := reader.Source()

	var (
		blocks  []ast.Node
		pending []text.Segment
		found   bool
	)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		last := len(pending) - 1
		pending[last] = pending[last].TrimRightSpace(source)
		paragraph := ast.NewParagraph()
		paragraph.Lines().AppendAll(pending)
		blocks = append(blocks, paragraph)
		pending = nil
	}

	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		if strings.TrimSpace(string(segment.Value(source))) == dashRuleLine {
			flush()
			blocks = append(blocks, ast.NewThematicBreak())
			found = true
			continue
		}
		pending = append(pending, segment)
	}
	if !found {
		return
	}
	flush()

	for _, block := range blocks {
		parent.InsertBefore(parent, node, block)
	}
	parent.RemoveChild(parent, node)
}

package embednode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
)

const (
	youtubeTag        = "youtube"
	embedLinkAttr     = "data-embed"
	previewInputClass = "preview_input"
)

// RenderHTML serializes node for storage: <youtube> elements for
// KindYouTube and <a data-embed> links for KindSocialEmbed.
func (e *Extension) RenderHTML(node Node) (string, error) {
	switch node.Type {
	case KindYouTube:
		return renderNode(element(youtubeTag, []xhtml.Attribute{
			{Key: "src", Val: node.Attrs.Src},
			{Key: "start", Val: strconv.Itoa(node.Attrs.Start)},
			{Key: "width", Val: strconv.Itoa(node.Attrs.Width)},
			{Key: "height", Val: strconv.Itoa(node.Attrs.Height)},
		}))
	case KindSocialEmbed:
		return renderNode(element("a", []xhtml.Attribute{
			{Key: embedLinkAttr, Val: "true"},
			{Key: "href", Val: node.Attrs.Src},
		}))
	default:
		return "", fmt.Errorf("unknown node type: %s", node.Type)
	}
}

// ParseHTML reads embed nodes back from serialized HTML. Both serialized
// shapes are recognized regardless of the extension's own kind.
func (e *Extension) ParseHTML(fragment string) ([]Node, []Warning, error) {
	document, err := xhtml.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	p := &htmlParser{ext: e}
	p.walk(document)
	return p.nodes, p.warnings, nil
}

type htmlParser struct {
	ext      *Extension
	nodes    []Node
	warnings []Warning
}

// walk collects embeds in document order. Children of a matched element are
// visited too: "<youtube/>" is not a void element, so the parser nests the
// siblings that follow a self-closed tag inside it.
func (p *htmlParser) walk(node *xhtml.Node) {
	if node.Type == xhtml.ElementNode {
		switch {
		case strings.EqualFold(node.Data, youtubeTag):
			p.addNode(KindYouTube, node, attributeValue(node, "src"))
		case strings.EqualFold(node.Data, "a") && hasAttribute(node, embedLinkAttr):
			p.addNode(KindSocialEmbed, node, attributeValue(node, "href"))
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		p.walk(child)
	}
}

func (p *htmlParser) addNode(kind Kind, el *xhtml.Node, src string) {
	src = strings.TrimSpace(src)
	attrs := Attrs{
		Src:    src,
		Start:  p.intAttribute(kind, el, "start"),
		Width:  p.intAttribute(kind, el, "width"),
		Height: p.intAttribute(kind, el, "height"),
	}
	if !isKnownSource(src) {
		p.addWarning(WarningUnsupportedSource, kind, fmt.Sprintf("source %q is not an embeddable video link", src))
	}
	p.nodes = append(p.nodes, Node{Type: kind, Attrs: p.ext.completeAttrs(attrs)})
}

func (p *htmlParser) intAttribute(kind Kind, el *xhtml.Node, key string) int {
	raw := strings.TrimSpace(attributeValue(el, key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		p.addWarning(WarningInvalidAttribute, kind, fmt.Sprintf("ignoring %s=%q", key, raw))
		return 0
	}
	return value
}

func (p *htmlParser) addWarning(warnType WarningType, kind Kind, message string) {
	p.warnings = append(p.warnings, Warning{
		Type:     warnType,
		NodeType: string(kind),
		Message:  message,
	})
}

func attributeValue(node *xhtml.Node, key string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

func hasAttribute(node *xhtml.Node, key string) bool {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, key) {
			return true
		}
	}
	return false
}

// MergeAttributes combines attribute maps left to right. Later values win,
// except class values which are space-joined and style values which are
// joined with "; ".
func MergeAttributes(maps ...map[string]string) map[string]string {
	merged := map[string]string{}
	for _, attrs := range maps {
		for key, value := range attrs {
			existing, ok := merged[key]
			joinable := key == "class" || key == "style"
			switch {
			case joinable && ok && existing != "" && value != "":
				if key == "class" {
					merged[key] = mergeClasses(existing, value)
				} else {
					merged[key] = strings.TrimRight(strings.TrimSpace(existing), ";") + "; " + strings.TrimSpace(value)
				}
			case joinable && ok && value == "":
				// an empty class or style never clears an earlier one
			default:
				merged[key] = value
			}
		}
	}
	return merged
}

func mergeClasses(existing, added string) string {
	classes := strings.Fields(existing)
	seen := make(map[string]bool, len(classes))
	for _, class := range classes {
		seen[class] = true
	}
	for _, class := range strings.Fields(added) {
		if !seen[class] {
			seen[class] = true
			classes = append(classes, class)
		}
	}
	return strings.Join(classes, " ")
}

func sortedAttributes(attrs map[string]string) []xhtml.Attribute {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]xhtml.Attribute, 0, len(keys))
	for _, key := range keys {
		out = append(out, xhtml.Attribute{Key: key, Val: attrs[key]})
	}
	return out
}

func element(tag string, attrs []xhtml.Attribute, children ...*xhtml.Node) *xhtml.Node {
	node := &xhtml.Node{
		Type: xhtml.ElementNode,
		Data: tag,
		Attr: attrs,
	}
	for _, child := range children {
		node.AppendChild(child)
	}
	return node
}

func renderNode(node *xhtml.Node) (string, error) {
	var sb strings.Builder
	if err := xhtml.Render(&sb, node); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", node.Data, err)
	}
	return sb.String(), nil
}

package embednode

import (
	"strconv"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
)

// Callbacks receive the user actions of a node view. The host editor
// implements them to delete the node or rewrite its source.
type Callbacks interface {
	OnRemove()
	OnUpdateSource(src string)
}

// Keys handled by View.HandleKey.
const (
	KeyBackspace = "Backspace"
	KeyEnter     = "Enter"
)

// View is the preview mounted in place of an embed node. When the source
// resolves it shows the player iframe; otherwise it falls back to an
// editable input holding the raw source.
type View struct {
	ext       *Extension
	callbacks Callbacks
	node      Node
	src       string
	attrs     map[string]string
	input     string
}

// NodeView mounts a view for node. cb may be nil.
func (e *Extension) NodeView(node Node, cb Callbacks) *View {
	v := &View{
		ext:       e,
		callbacks: cb,
		node:      node,
	}
	v.resolve()
	return v
}

func (v *View) resolve() {
	v.src, v.attrs = "", nil
	v.input = v.node.Attrs.Src

	embedURL, ok := v.ext.resolve(v.node.Attrs)
	if !ok {
		return
	}
	v.src = embedURL

	opts := v.ext.options
	width := v.node.Attrs.Width
	if width <= 0 {
		width = opts.Width
	}
	height := v.node.Attrs.Height
	if height <= 0 {
		height = opts.Height
	}

	frame := map[string]string{
		"width":  strconv.Itoa(width),
		"height": strconv.Itoa(height),
	}
	if fullscreen := v.ext.resolver.Options().AllowFullscreen; fullscreen == nil || *fullscreen {
		frame["allowfullscreen"] = "true"
	}
	v.attrs = MergeAttributes(opts.HTMLAttributes, frame, map[string]string{"src": embedURL})
}

// Node returns the node currently shown.
func (v *View) Node() Node {
	return v.node
}

// Src returns the resolved iframe URL, or "" in fallback mode.
func (v *View) Src() string {
	return v.src
}

// Fallback reports whether the view shows the editable input instead of
// the player.
func (v *View) Fallback() bool {
	return v.src == ""
}

// IframeAttributes returns a copy of the merged iframe attributes. It is
// nil in fallback mode.
func (v *View) IframeAttributes() map[string]string {
	if v.attrs == nil {
		return nil
	}
	return MergeAttributes(v.attrs)
}

// InputValue returns the current text of the fallback input.
func (v *View) InputValue() string {
	return v.input
}

// SetInputValue replaces the text of the fallback input.
func (v *View) SetInputValue(value string) {
	v.input = value
}

// Remove asks the host to delete the node.
func (v *View) Remove() {
	if v.callbacks != nil {
		v.callbacks.OnRemove()
	}
}

// UpdateSource asks the host to replace the node source and re-resolves the
// view. Like replacing the node markup, every other attribute returns to
// its default.
func (v *View) UpdateSource(src string) {
	if v.callbacks != nil {
		v.callbacks.OnUpdateSource(src)
	}
	v.node = Node{
		Type:  v.node.Type,
		Attrs: v.ext.completeAttrs(Attrs{Src: src}),
	}
	v.resolve()
}

// HandleKey applies an editor keyboard shortcut to the fallback input and
// reports whether the key was consumed. Backspace deletes the last
// character; Enter submits the input as the new source.
func (v *View) HandleKey(key string) bool {
	if !v.Fallback() {
		return false
	}
	switch key {
	case KeyBackspace:
		if v.input != "" {
			_, size := utf8.DecodeLastRuneInString(v.input)
			v.input = v.input[:len(v.input)-size]
		}
		return true
	case KeyEnter:
		v.UpdateSource(v.input)
		return true
	default:
		return false
	}
}

// RenderHTML renders the view: the player iframe, or a form with the
// fallback input.
func (v *View) RenderHTML() (string, error) {
	if v.Fallback() {
		input := element("input", []xhtml.Attribute{
			{Key: "class", Val: previewInputClass},
			{Key: "type", Val: "text"},
			{Key: "value", Val: v.input},
		})
		return renderNode(element("div", nil, element("form", nil, input)))
	}
	return renderNode(element("div", nil, element("iframe", sortedAttributes(v.attrs))))
}

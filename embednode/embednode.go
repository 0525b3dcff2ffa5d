// Package embednode defines the video embed node of the editor: its
// attributes, the insert command, the paste rule, HTML serialization and the
// node view that previews the resolved player.
package embednode

import (
	"fmt"
	"strings"

	"github.com/rgonek/editor-embeds/videolink"
)

// Attrs are the stored attributes of an embed node.
type Attrs struct {
	Src    string `json:"src"`
	Start  int    `json:"start"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Node is an embed node as it appears in an editor document.
type Node struct {
	Type  Kind  `json:"type"`
	Attrs Attrs `json:"attrs"`
}

// Extension is a configured embed node definition.
type Extension struct {
	options  Options
	resolver *videolink.Resolver
}

// New creates an Extension with the given options.
func New(opts Options) (*Extension, error) {
	cfg := opts.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver, err := videolink.New(cfg.Video)
	if err != nil {
		return nil, fmt.Errorf("invalid video options: %w", err)
	}
	cfg.Video = resolver.Options()

	return &Extension{
		options:  cfg,
		resolver: resolver,
	}, nil
}

// Name returns the node type name.
func (e *Extension) Name() Kind {
	return e.options.Kind
}

// Group returns the content group the node belongs to.
func (e *Extension) Group() string {
	if e.options.Inline {
		return "inline"
	}
	return "block"
}

// Options returns a copy of the extension options with defaults applied.
func (e *Extension) Options() Options {
	return e.options.clone()
}

// Resolver returns the resolver bound to the extension's video options.
func (e *Extension) Resolver() *videolink.Resolver {
	return e.resolver
}

// DefaultAttrs returns the attributes of a node created without arguments.
func (e *Extension) DefaultAttrs() Attrs {
	return Attrs{
		Width:  e.options.Width,
		Height: e.options.Height,
	}
}

// Insert builds a node from attrs. It refuses a source that is set but not a
// supported video link. Missing dimensions fall back to the options and a
// missing start offset is taken from the link's time parameter.
func (e *Extension) Insert(attrs Attrs) (Node, bool) {
	attrs.Src = strings.TrimSpace(attrs.Src)
	if attrs.Src != "" && !videolink.IsSupportedURL(attrs.Src) {
		return Node{}, false
	}
	return Node{Type: e.options.Kind, Attrs: e.completeAttrs(attrs)}, true
}

// PasteRule turns pasted text into a node when the text is exactly one
// supported video link.
func (e *Extension) PasteRule(text string) (Node, bool) {
	if !*e.options.AddPasteHandler {
		return Node{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t\r\n") {
		return Node{}, false
	}
	if !videolink.IsSupportedURL(text) {
		return Node{}, false
	}
	return e.Insert(Attrs{Src: text})
}

func (e *Extension) completeAttrs(attrs Attrs) Attrs {
	if attrs.Width <= 0 {
		attrs.Width = e.options.Width
	}
	if attrs.Height <= 0 {
		attrs.Height = e.options.Height
	}
	if attrs.Start == 0 && attrs.Src != "" {
		if offset, ok := videolink.StartOffset(attrs.Src); ok {
			attrs.Start = offset
		}
	}
	if attrs.Start < 0 {
		attrs.Start = 0
	}
	return attrs
}

// resolve returns the iframe URL for attrs. Sources that are already embed
// URLs are rebuilt with the bound options.
func (e *Extension) resolve(attrs Attrs) (string, bool) {
	if attrs.Src == "" {
		return "", false
	}
	if embedURL, ok := e.resolver.EmbedURL(attrs.Src, attrs.Start); ok {
		return embedURL, true
	}
	return e.resolver.Reembed(attrs.Src, attrs.Start)
}

func isKnownSource(src string) bool {
	if videolink.IsSupportedURL(src) {
		return true
	}
	_, ok := videolink.VideoIDFromEmbedURL(src)
	return ok
}

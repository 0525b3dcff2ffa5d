package embednode

import (
	"fmt"
	"strings"

	"github.com/rgonek/editor-embeds/videolink"
)

// Kind selects how an embed node is named and serialized.
type Kind string

const (
	// KindYouTube serializes as a <youtube> element.
	KindYouTube Kind = "youtube"
	// KindSocialEmbed serializes as an <a data-embed> link, so documents
	// degrade to a plain link outside the editor.
	KindSocialEmbed Kind = "social_embed"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
)

// Options configures an embed node definition.
type Options struct {
	Kind            Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	Video           videolink.Options `json:"video,omitempty" yaml:"video,omitempty"`
	Width           int               `json:"width,omitempty" yaml:"width,omitempty"`
	Height          int               `json:"height,omitempty" yaml:"height,omitempty"`
	Inline          bool              `json:"inline,omitempty" yaml:"inline,omitempty"`
	AddPasteHandler *bool             `json:"addPasteHandler,omitempty" yaml:"addPasteHandler,omitempty"`
	HTMLAttributes  map[string]string `json:"htmlAttributes,omitempty" yaml:"htmlAttributes,omitempty"`
}

func (o Options) applyDefaults() Options {
	if o.Kind == "" {
		o.Kind = KindYouTube
	}
	if o.Width == 0 {
		o.Width = defaultWidth
	}
	if o.Height == 0 {
		o.Height = defaultHeight
	}
	if o.AddPasteHandler == nil {
		o.AddPasteHandler = videolink.Bool(true)
	}
	return o
}

// clone returns a deep copy of Options for pointer and map-backed fields.
func (o Options) clone() Options {
	cloned := o
	if o.AddPasteHandler != nil {
		cloned.AddPasteHandler = videolink.Bool(*o.AddPasteHandler)
	}
	if o.HTMLAttributes != nil {
		cloned.HTMLAttributes = make(map[string]string, len(o.HTMLAttributes))
		for k, v := range o.HTMLAttributes {
			cloned.HTMLAttributes[k] = v
		}
	}
	return cloned
}

// Validate checks that option values are valid. Video options are checked
// when the resolver is built.
func (o Options) Validate() error {
	if o.Kind != KindYouTube && o.Kind != KindSocialEmbed {
		return fmt.Errorf("invalid kind %q", o.Kind)
	}
	if o.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", o.Width)
	}
	if o.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", o.Height)
	}
	for name := range o.HTMLAttributes {
		if !validAttributeName(name) {
			return fmt.Errorf("invalid htmlAttributes key %q", name)
		}
		if strings.EqualFold(name, "src") {
			return fmt.Errorf("htmlAttributes must not set src")
		}
	}
	return nil
}

func validAttributeName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\n\f\r\"'>/=")
}

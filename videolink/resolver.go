package videolink

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Resolver builds embed URLs with a fixed, validated set of options.
// It is read-only after New and may be shared between goroutines.
type Resolver struct {
	options Options
}

// New creates a Resolver bound to opts.
func New(opts Options) (*Resolver, error) {
	cfg := opts.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{options: cfg}, nil
}

// Options returns a copy of the bound options with defaults applied.
func (r *Resolver) Options() Options {
	return r.options.clone()
}

// EmbedURL resolves src with the bound options.
func (r *Resolver) EmbedURL(src string, start int) (string, bool) {
	return BuildEmbedURL(Request{URL: src, Start: start, Options: r.options})
}

// Reembed rebuilds an already resolved embed URL with the bound options.
func (r *Resolver) Reembed(embedURLString string, start int) (string, bool) {
	id, ok := VideoIDFromEmbedURL(embedURLString)
	if !ok {
		return "", false
	}
	return embedURL(id, start, r.options), true
}

// LoadOptions decodes YAML options from r. Unknown keys are rejected and the
// result is validated. An empty document yields zero Options.
func LoadOptions(r io.Reader) (Options, error) {
	return DecodeOptions(r, Options{})
}

// DecodeOptions decodes YAML options from r on top of base: keys present in
// the document replace the matching fields of base, the rest are kept.
func DecodeOptions(r io.Reader, base Options) (Options, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	opts := base.clone()
	if err := dec.Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return base.clone(), nil
		}
		return Options{}, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := opts.applyDefaults().Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

package mdembed

import (
	"github.com/rgonek/editor-embeds/embednode"
	"github.com/rgonek/editor-embeds/videolink"
)

// Config holds the markdown converter options.
type Config struct {
	Embed    embednode.Options `json:"embed,omitempty" yaml:"embed,omitempty"`
	Linkify  *bool             `json:"linkify,omitempty" yaml:"linkify,omitempty"`
	DashRule *bool             `json:"dashRule,omitempty" yaml:"dashRule,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.Linkify == nil {
		c.Linkify = videolink.Bool(true)
	}
	if c.DashRule == nil {
		c.DashRule = videolink.Bool(true)
	}
	return c
}

// clone returns a copy of Config that shares no pointers with c.
func (c Config) clone() Config {
	cloned := c
	if c.Linkify != nil {
		cloned.Linkify = videolink.Bool(*c.Linkify)
	}
	if c.DashRule != nil {
		cloned.DashRule = videolink.Bool(*c.DashRule)
	}
	return cloned
}

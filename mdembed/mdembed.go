// Package mdembed renders markdown to HTML with the editor's markdown rules:
// paragraphs that hold only a video link become embedded players, and a
// smart-dash "—-" line becomes a horizontal rule.
package mdembed

import (
	"bytes"
	"fmt"

	"github.com/rgonek/editor-embeds/embednode"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Converter converts markdown to HTML with embeds.
type Converter struct {
	config   Config
	ext      *embednode.Extension
	markdown goldmark.Markdown
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()

	ext, err := embednode.New(cfg.Embed)
	if err != nil {
		return nil, fmt.Errorf("invalid embed options: %w", err)
	}
	cfg.Embed = ext.Options()

	extensions := []goldmark.Extender{NewEmbedExtension(ext)}
	if *cfg.Linkify {
		extensions = append(extensions, extension.GFM)
	} else {
		extensions = append(extensions, extension.Table, extension.Strikethrough, extension.TaskList)
	}
	if *cfg.DashRule {
		extensions = append(extensions, DashRule)
	}

	return &Converter{
		config:   cfg,
		ext:      ext,
		markdown: goldmark.New(goldmark.WithExtensions(extensions...)),
	}, nil
}

// Config returns a copy of the converter config with defaults applied.
func (c *Converter) Config() Config {
	cfg := c.config.clone()
	cfg.Embed = c.ext.Options()
	return cfg
}

// Extension returns the embed node definition used by the converter.
func (c *Converter) Extension() *embednode.Extension {
	return c.ext
}

// Convert takes a markdown document and returns HTML.
func (c *Converter) Convert(markdown string) (Result, error) {
	pc := parser.NewContext()

	var buf bytes.Buffer
	if err := c.markdown.Convert([]byte(markdown), &buf, parser.WithContext(pc)); err != nil {
		return Result{}, fmt.Errorf("failed to convert markdown: %w", err)
	}

	return Result{
		HTML:     buf.String(),
		Warnings: Warnings(pc),
	}, nil
}

package mdembed

import "github.com/rgonek/editor-embeds/embednode"

// Result holds the output of a markdown conversion.
type Result struct {
	HTML     string              `json:"html"`
	Warnings []embednode.Warning `json:"warnings,omitempty"`
}

package embednode

// WarningType categorizes parse warnings.
type WarningType string

const (
	WarningUnsupportedSource WarningType = "unsupported_source"
	WarningInvalidAttribute  WarningType = "invalid_attribute"
	WarningUnembeddableLink  WarningType = "unembeddable_link"
)

// Warning represents a non-fatal issue encountered while reading embeds.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}

package videolink

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// ProgressBarColor values accepted by the player.
const (
	ProgressBarRed   = "red"
	ProgressBarWhite = "white"
)

// Annotation display policies for IVLoadPolicy. Zero leaves the player default.
const (
	IVLoadPolicyShow = 1
	IVLoadPolicyHide = 3
)

// Options holds the playback and display flags of an embed. The zero value
// uses the provider defaults for every flag.
type Options struct {
	AllowFullscreen   *bool  `json:"allowFullscreen,omitempty" yaml:"allowFullscreen,omitempty"`
	Autoplay          bool   `json:"autoplay,omitempty" yaml:"autoplay,omitempty"`
	CCLanguage        string `json:"ccLanguage,omitempty" yaml:"ccLanguage,omitempty"`
	CCLoadPolicy      *bool  `json:"ccLoadPolicy,omitempty" yaml:"ccLoadPolicy,omitempty"`
	Controls          *bool  `json:"controls,omitempty" yaml:"controls,omitempty"`
	DisableKBControls bool   `json:"disableKBcontrols,omitempty" yaml:"disableKBcontrols,omitempty"`
	EnableIFrameAPI   bool   `json:"enableIFrameApi,omitempty" yaml:"enableIFrameApi,omitempty"`
	EndTime           int    `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	InterfaceLanguage string `json:"interfaceLanguage,omitempty" yaml:"interfaceLanguage,omitempty"`
	IVLoadPolicy      int    `json:"ivLoadPolicy,omitempty" yaml:"ivLoadPolicy,omitempty"`
	Loop              bool   `json:"loop,omitempty" yaml:"loop,omitempty"`
	ModestBranding    bool   `json:"modestBranding,omitempty" yaml:"modestBranding,omitempty"`
	NoCookie          bool   `json:"nocookie,omitempty" yaml:"nocookie,omitempty"`
	Origin            string `json:"origin,omitempty" yaml:"origin,omitempty"`
	Playlist          string `json:"playlist,omitempty" yaml:"playlist,omitempty"`
	ProgressBarColor  string `json:"progressBarColor,omitempty" yaml:"progressBarColor,omitempty"`
}

// Bool returns a pointer to v, for the tri-state fields of Options.
func Bool(v bool) *bool {
	return &v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func (o Options) applyDefaults() Options {
	if o.AllowFullscreen == nil {
		o.AllowFullscreen = Bool(true)
	}
	if o.Controls == nil {
		o.Controls = Bool(true)
	}
	return o
}

// clone returns a copy that shares no pointers with o.
func (o Options) clone() Options {
	cloned := o
	if o.AllowFullscreen != nil {
		cloned.AllowFullscreen = Bool(*o.AllowFullscreen)
	}
	if o.CCLoadPolicy != nil {
		cloned.CCLoadPolicy = Bool(*o.CCLoadPolicy)
	}
	if o.Controls != nil {
		cloned.Controls = Bool(*o.Controls)
	}
	return cloned
}

// Validate checks that option values are acceptable to the player.
func (o Options) Validate() error {
	if o.EndTime < 0 {
		return fmt.Errorf("endTime must not be negative, got %d", o.EndTime)
	}
	if o.IVLoadPolicy != 0 && o.IVLoadPolicy != IVLoadPolicyShow && o.IVLoadPolicy != IVLoadPolicyHide {
		return fmt.Errorf("invalid ivLoadPolicy %d: must be %d or %d", o.IVLoadPolicy, IVLoadPolicyShow, IVLoadPolicyHide)
	}
	if o.ProgressBarColor != "" && o.ProgressBarColor != ProgressBarRed && o.ProgressBarColor != ProgressBarWhite {
		return fmt.Errorf("invalid progressBarColor %q", o.ProgressBarColor)
	}
	if err := validateLanguage("ccLanguage", o.CCLanguage); err != nil {
		return err
	}
	if err := validateLanguage("interfaceLanguage", o.InterfaceLanguage); err != nil {
		return err
	}
	if err := validateOrigin(o.Origin); err != nil {
		return err
	}
	for _, id := range playlistIDs(o.Playlist) {
		if !IsVideoID(id) {
			return fmt.Errorf("invalid playlist entry %q", id)
		}
	}
	return nil
}

func validateLanguage(field, tag string) error {
	if tag == "" {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, tag, err)
	}
	return nil
}

func validateOrigin(origin string) error {
	if origin == "" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid origin %q: must be an absolute http(s) URL", origin)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid origin %q: must not carry a path, query or fragment", origin)
	}
	return nil
}

func playlistIDs(playlist string) []string {
	if strings.TrimSpace(playlist) == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(playlist, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

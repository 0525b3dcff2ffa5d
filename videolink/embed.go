package videolink

import (
	"net/url"
	"strconv"
	"strings"
)

// Request describes one embed: the source link, an optional start offset in
// seconds and the player options.
type Request struct {
	URL     string
	Start   int
	Options Options
}

// EmbedHost returns the embed endpoint prefix, including the trailing slash.
func EmbedHost(noCookie bool) string {
	if noCookie {
		return "https://" + noCookieHostWWW + embedPathPrefix
	}
	return "https://" + watchHostWWW + embedPathPrefix
}

// BuildEmbedURL returns the iframe URL for req. It reports false when the
// source link is not embeddable; callers should then fall back to the plain
// link.
func BuildEmbedURL(req Request) (string, bool) {
	id, ok := ExtractVideoID(req.URL)
	if !ok {
		return "", false
	}
	return embedURL(id, req.Start, req.Options), true
}

// embedURL assembles the URL. Parameter order is fixed so equal inputs give
// byte-identical output.
func embedURL(id string, start int, opts Options) string {
	var q query
	if start > 0 {
		q.add("start", strconv.Itoa(start))
	}
	if opts.Autoplay {
		q.add("autoplay", "1")
	}
	if !boolOr(opts.Controls, true) {
		q.add("controls", "0")
	}
	if opts.Loop {
		q.add("loop", "1")
		// Single-video looping only works when the video is its own playlist.
		if len(playlistIDs(opts.Playlist)) == 0 {
			q.add("playlist", id)
		}
	}
	if opts.CCLanguage != "" {
		q.add("cc_lang_pref", opts.CCLanguage)
	}
	if boolOr(opts.CCLoadPolicy, false) {
		q.add("cc_load_policy", "1")
	}
	if opts.IVLoadPolicy != 0 {
		q.add("iv_load_policy", strconv.Itoa(opts.IVLoadPolicy))
	}
	if opts.DisableKBControls {
		q.add("disablekb", "1")
	}
	if opts.EnableIFrameAPI {
		q.add("enablejsapi", "1")
	}
	if opts.EndTime > 0 {
		q.add("end", strconv.Itoa(opts.EndTime))
	}
	if opts.InterfaceLanguage != "" {
		q.add("hl", opts.InterfaceLanguage)
	}
	if opts.ModestBranding {
		q.add("modestbranding", "1")
	}
	if opts.Origin != "" {
		q.add("origin", opts.Origin)
	}
	if ids := playlistIDs(opts.Playlist); len(ids) > 0 {
		escaped := make([]string, len(ids))
		for i, playlistID := range ids {
			escaped[i] = url.QueryEscape(playlistID)
		}
		q.addRaw("playlist", strings.Join(escaped, ","))
	}
	if !boolOr(opts.AllowFullscreen, true) {
		q.add("fs", "0")
	}
	if opts.ProgressBarColor != "" {
		q.add("color", opts.ProgressBarColor)
	}

	return EmbedHost(opts.NoCookie) + id + q.String()
}

// query is an insertion-ordered query string; url.Values sorts its keys.
type query struct {
	pairs []string
}

func (q *query) add(key, value string) {
	q.addRaw(key, url.QueryEscape(value))
}

func (q *query) addRaw(key, escapedValue string) {
	q.pairs = append(q.pairs, key+"="+escapedValue)
}

func (q query) String() string {
	if len(q.pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(q.pairs, "&")
}

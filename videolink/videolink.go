// Package videolink recognizes video-sharing links and turns them into
// iframe-ready embed URLs.
//
// Two source shapes are recognized: the short share link
// (https://youtu.be/<id>) and the watch page
// (https://www.youtube.com/watch?v=<id>). Everything in this package is a
// pure function of its inputs and safe for concurrent use.
package videolink

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	shortHost        = "youtu.be"
	watchHost        = "youtube.com"
	watchHostWWW     = "www.youtube.com"
	noCookieHost     = "youtube-nocookie.com"
	noCookieHostWWW  = "www.youtube-nocookie.com"
	watchPath        = "/watch"
	embedPathPrefix  = "/embed/"
	videoIDParameter = "v"

	// maxStartOffset bounds start offsets so they fit the player's 32-bit
	// parameter on every platform.
	maxStartOffset = math.MaxInt32
)

var (
	videoIDRe     = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	startOffsetRe = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s?)?$`)
	schemeRe      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

// IsVideoID reports whether id is a well-formed 11 character video identifier.
func IsVideoID(id string) bool {
	return videoIDRe.MatchString(id)
}

// IsSupportedURL reports whether raw is a short share link or a watch page
// link carrying a valid video identifier.
func IsSupportedURL(raw string) bool {
	_, ok := ExtractVideoID(raw)
	return ok
}

// ExtractVideoID returns the video identifier of a supported URL.
func ExtractVideoID(raw string) (string, bool) {
	u, ok := parseSource(raw)
	if !ok {
		return "", false
	}

	var id string
	switch strings.ToLower(u.Hostname()) {
	case shortHost:
		id = strings.TrimPrefix(u.EscapedPath(), "/")
	case watchHost, watchHostWWW:
		if u.EscapedPath() != watchPath {
			return "", false
		}
		id = u.Query().Get(videoIDParameter)
	default:
		return "", false
	}

	if !IsVideoID(id) {
		return "", false
	}
	return id, true
}

// IsProviderHost reports whether raw points at one of the provider's hosts,
// whether or not it is an embeddable link.
func IsProviderHost(raw string) bool {
	u, ok := parseSource(raw)
	if !ok {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == shortHost || host == watchHost || strings.HasSuffix(host, "."+watchHost) ||
		host == noCookieHost || strings.HasSuffix(host, "."+noCookieHost)
}

// VideoIDFromEmbedURL returns the identifier of an already resolved embed URL
// on either the regular or the privacy-enhanced host.
func VideoIDFromEmbedURL(raw string) (string, bool) {
	u, ok := parseSource(raw)
	if !ok {
		return "", false
	}

	switch strings.ToLower(u.Hostname()) {
	case watchHost, watchHostWWW, noCookieHost, noCookieHostWWW:
	default:
		return "", false
	}

	path := u.EscapedPath()
	if !strings.HasPrefix(path, embedPathPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(path, embedPathPrefix)
	if !IsVideoID(id) {
		return "", false
	}
	return id, true
}

// StartOffset returns the start offset in seconds encoded in the "t" (or
// "start") parameter of a supported URL. Both plain seconds ("90", "90s")
// and duration notation ("1m30s", "1h2m") are understood.
func StartOffset(raw string) (int, bool) {
	if !IsSupportedURL(raw) {
		return 0, false
	}
	u, _ := parseSource(raw)

	query := u.Query()
	value := query.Get("t")
	if value == "" {
		value = query.Get("start")
	}
	return parseOffset(value)
}

func parseOffset(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	match := startOffsetRe.FindStringSubmatch(value)
	if match == nil {
		return 0, false
	}

	seconds := 0
	for idx, unit := range []int{3600, 60, 1} {
		part := match[idx+1]
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > (maxStartOffset-seconds)/unit {
			return 0, false
		}
		seconds += n * unit
	}
	return seconds, true
}

// parseSource parses user supplied link text. A missing scheme is treated as
// https, even when the query carries other URLs; anything other than
// http(s), user info or an explicit port rejects the input.
func parseSource(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if !schemeRe.MatchString(raw) {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Opaque != "" || u.User != nil || u.Hostname() == "" || u.Host != u.Hostname() {
		return nil, false
	}
	return u, true
}

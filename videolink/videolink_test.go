package videolink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const rickID = "dQw4w9WgXcQ"

func TestIsSupportedURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"short link", "https://youtu.be/dQw4w9WgXcQ", true},
		{"short link with time", "https://youtu.be/dQw4w9WgXcQ?t=30", true},
		{"short link http", "http://youtu.be/dQw4w9WgXcQ", true},
		{"short link without scheme", "youtu.be/dQw4w9WgXcQ", true},
		{"watch with www", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"watch without www", "https://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"watch without scheme", "www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"watch bare host", "youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"watch extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30&list=PL123", true},
		{"watch id not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", true},
		{"id with dash and underscore", "https://youtu.be/a-b_c-d_e-f", true},
		{"upper case host", "HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", true},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ\n", true},
		{"watch without scheme, url in query", "youtube.com/watch?v=dQw4w9WgXcQ&ref=https://example.com", true},
		{"watch www without scheme, url in query", "www.youtube.com/watch?v=dQw4w9WgXcQ&next=http://a.b/c", true},
		{"short link without scheme, url in query", "youtu.be/dQw4w9WgXcQ?from=https://x.y", true},

		{"empty", "", false},
		{"blank", "   ", false},
		{"garbage", "not a url", false},
		{"malformed escape", "https://youtu.be/%zz", false},
		{"unrelated host", "https://example.com/video/dQw4w9WgXcQ", false},
		{"unrelated host watch path", "https://example.com/watch?v=dQw4w9WgXcQ", false},
		{"host suffix trick", "https://youtu.be.evil.example/dQw4w9WgXcQ", false},
		{"host prefix trick", "https://notyoutu.be/dQw4w9WgXcQ", false},
		{"user info trick", "https://youtu.be@evil.example/dQw4w9WgXcQ", false},
		{"id in query of other host", "https://evil.example/?u=https://youtu.be/dQw4w9WgXcQ", false},
		{"explicit port", "https://youtu.be:8443/dQw4w9WgXcQ", false},
		{"ftp scheme", "ftp://youtu.be/dQw4w9WgXcQ", false},
		{"short id", "https://youtu.be/dQw4w9WgXc", false},
		{"long id", "https://youtu.be/dQw4w9WgXcQQ", false},
		{"invalid id char", "https://youtu.be/dQw4w9WgX.Q", false},
		{"short link extra segment", "https://youtu.be/dQw4w9WgXcQ/extra", false},
		{"short link no id", "https://youtu.be/", false},
		{"watch missing v", "https://www.youtube.com/watch?list=PL123", false},
		{"watch empty v", "https://www.youtube.com/watch?v=", false},
		{"watch wrong path", "https://www.youtube.com/watching?v=dQw4w9WgXcQ", false},
		{"channel page", "https://www.youtube.com/channel/dQw4w9WgXcQ", false},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupportedURL(tt.url))
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	id, ok := ExtractVideoID("https://youtu.be/dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, rickID, id)

	id, ok = ExtractVideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30")
	assert.True(t, ok)
	assert.Equal(t, rickID, id)

	id, ok = ExtractVideoID("https://example.com/video/dQw4w9WgXcQ")
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestExtractVideoIDIsCaseSensitive(t *testing.T) {
	id, ok := ExtractVideoID("https://youtu.be/DQW4W9WGXCQ")
	assert.True(t, ok)
	assert.Equal(t, "DQW4W9WGXCQ", id)
	assert.NotEqual(t, rickID, id)
}

func TestSourceFormsAgree(t *testing.T) {
	ids := []string{rickID, "a-b_c-d_e-f", "___________", "ABCDEFGHIJK", "01234567890"}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			short := "https://youtu.be/" + id
			watch := "https://www.youtube.com/watch?v=" + id

			shortID, ok := ExtractVideoID(short)
			assert.True(t, ok)
			watchID, ok := ExtractVideoID(watch)
			assert.True(t, ok)
			assert.Equal(t, shortID, watchID)

			opts := Options{Autoplay: true, Loop: true, ModestBranding: true}
			fromShort, ok := BuildEmbedURL(Request{URL: short, Start: 5, Options: opts})
			assert.True(t, ok)
			fromWatch, ok := BuildEmbedURL(Request{URL: watch, Start: 5, Options: opts})
			assert.True(t, ok)
			assert.Equal(t, fromShort, fromWatch)
		})
	}
}

func TestVideoIDFromEmbedURL(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", rickID, true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?start=30&autoplay=1", rickID, true},
		{"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", rickID, true},
		{"youtube-nocookie.com/embed/dQw4w9WgXcQ", rickID, true},
		{"https://youtu.be/dQw4w9WgXcQ", "", false},
		{"https://example.com/embed/dQw4w9WgXcQ", "", false},
		{"https://www.youtube.com/embed/short", "", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ/extra", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, ok := VideoIDFromEmbedURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestStartOffset(t *testing.T) {
	tests := []struct {
		url    string
		want   int
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30", 30, true},
		{"https://youtu.be/dQw4w9WgXcQ?t=45s", 45, true},
		{"https://youtu.be/dQw4w9WgXcQ?t=1m30s", 90, true},
		{"https://youtu.be/dQw4w9WgXcQ?t=1h2m3s", 3723, true},
		{"https://youtu.be/dQw4w9WgXcQ?t=2h", 7200, true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&start=12", 12, true},
		{"https://youtu.be/dQw4w9WgXcQ", 0, false},
		{"https://youtu.be/dQw4w9WgXcQ?t=soon", 0, false},
		{"https://youtu.be/dQw4w9WgXcQ?t=-5", 0, false},
		{"https://youtu.be/dQw4w9WgXcQ?t=2147483647", 2147483647, true},
		{"https://youtu.be/dQw4w9WgXcQ?t=2147483648", 0, false},
		{"https://youtu.be/dQw4w9WgXcQ?t=2562047788015216h", 0, false},
		{"https://youtu.be/dQw4w9WgXcQ?t=5124095576030432h", 0, false},
		{"https://youtu.be/dQw4w9WgXcQ?t=596523h14m7s", 2147483647, true},
		{"https://youtu.be/dQw4w9WgXcQ?t=596523h14m8s", 0, false},
		{"https://youtu.be/dQw4w9WgXcQ?t=99999999999999999999999", 0, false},
		{"youtube.com/watch?v=dQw4w9WgXcQ&ref=https://example.com&t=15", 15, true},
		{"https://example.com/watch?v=dQw4w9WgXcQ&t=30", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := StartOffset(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func FuzzExtractVideoID(f *testing.F) {
	seeds := []string{
		"",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30",
		"youtube.com/watch?v=dQw4w9WgXcQ",
		"https://example.com/video/dQw4w9WgXcQ",
		"https://youtu.be@evil.example/dQw4w9WgXcQ",
		"%%%://",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		id, ok := ExtractVideoID(raw)
		if ok != IsSupportedURL(raw) {
			t.Fatalf("ExtractVideoID and IsSupportedURL disagree for %q", raw)
		}
		if ok && !IsVideoID(id) {
			t.Fatalf("extracted malformed id %q from %q", id, raw)
		}

		embed, built := BuildEmbedURL(Request{URL: raw})
		if built != ok {
			t.Fatalf("BuildEmbedURL(%q) = %v, want %v", raw, built, ok)
		}
		if built && !strings.HasPrefix(embed, EmbedHost(false)+id) {
			t.Fatalf("unexpected embed url %q", embed)
		}
	})
}

func TestIsProviderHost(t *testing.T) {
	assert.True(t, IsProviderHost("https://www.youtube.com/channel/UC38IQsAvIsxxjztdMZQtwHA"))
	assert.True(t, IsProviderHost("https://m.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, IsProviderHost("youtu.be/nope"))
	assert.True(t, IsProviderHost("https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"))
	assert.False(t, IsProviderHost("https://notyoutube.com/watch?v=dQw4w9WgXcQ"))
	assert.False(t, IsProviderHost("https://example.com"))
	assert.False(t, IsProviderHost(""))
}

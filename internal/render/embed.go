package render

import (
	"net/url"
	"regexp"
	"strings"
)

const youtubeEmbedBase = "https://www.youtube.com/embed/"

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)

// YouTubeEmbedURL canonicalizes the common YouTube URL shapes into an
// embeddable form. Supported: watch links, youtu.be short links, shorts,
// live, existing embed links, playlists, channel pages, and handle/legacy
// user pages. Anything it cannot parse yields ("", false) and the caller
// falls through to its placeholder.
func YouTubeEmbedURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" && host != "youtu.be" && host != "youtube-nocookie.com" {
		return "", false
	}

	path := strings.Trim(parsed.EscapedPath(), "/")
	segments := strings.Split(path, "/")

	if host == "youtu.be" {
		if len(segments) >= 1 && validVideoID(segments[0]) {
			return youtubeEmbedBase + segments[0], true
		}
		return "", false
	}

	switch {
	case path == "watch":
		if id := parsed.Query().Get("v"); validVideoID(id) {
			return youtubeEmbedBase + id, true
		}
	case path == "playlist":
		if list := parsed.Query().Get("list"); list != "" {
			return youtubeEmbedBase + "videoseries?list=" + url.QueryEscape(list), true
		}
	case len(segments) == 2 && (segments[0] == "shorts" || segments[0] == "live" || segments[0] == "embed"):
		if validVideoID(segments[1]) {
			return youtubeEmbedBase + segments[1], true
		}
	case len(segments) == 2 && segments[0] == "channel":
		// A channel's uploads playlist shares the channel id with a UU prefix.
		if strings.HasPrefix(segments[1], "UC") && len(segments[1]) > 2 {
			return youtubeEmbedBase + "videoseries?list=UU" + url.QueryEscape(segments[1][2:]), true
		}
	case len(segments) == 1 && strings.HasPrefix(segments[0], "@") && len(segments[0]) > 1:
		return youtubeEmbedBase + "?listType=user_uploads&list=" + url.QueryEscape(segments[0][1:]), true
	case len(segments) == 2 && (segments[0] == "user" || segments[0] == "c"):
		return youtubeEmbedBase + "?listType=user_uploads&list=" + url.QueryEscape(segments[1]), true
	}
	return "", false
}

func validVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}

package librespot

import (
	"regexp"
	"strings"
)

// The daemon hands out image references in several shapes: relative paths
// served by the daemon itself, internal u.scdn.co URLs that do not resolve
// publicly, spotify:image: URIs, and bare hex IDs. Everything except the
// relative path is rewritten to the public i.scdn.co CDN.
var (
	uScdnRe    = regexp.MustCompile(`u\.scdn\.co/images/.*?/([a-fA-F0-9]{40})$`)
	imageURIRe = regexp.MustCompile(`(?i)^spotify:image:([a-fA-F0-9]{40})$`)
	bareHexRe  = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
)

// NormalizeImageURL resolves a possibly-relative or internal image reference
// into a fetchable URL. Returns "" for empty input; unrecognized values pass
// through unchanged.
func NormalizeImageURL(raw, baseURL string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "/") && baseURL != "" {
		return strings.TrimRight(baseURL, "/") + raw
	}
	if m := uScdnRe.FindStringSubmatch(raw); m != nil {
		return "https://i.scdn.co/image/" + strings.ToLower(m[1])
	}
	if m := imageURIRe.FindStringSubmatch(raw); m != nil {
		return "https://i.scdn.co/image/" + strings.ToLower(m[1])
	}
	if bareHexRe.MatchString(raw) {
		return "https://i.scdn.co/image/" + strings.ToLower(raw)
	}
	return raw
}

// ExtractID returns the ID segment of a spotify URI ("spotify:track:abc"
// yields "abc"). Returns the input unchanged if it has no colon.
func ExtractID(uri string) string {
	if uri == "" {
		return ""
	}
	idx := strings.LastIndex(uri, ":")
	if idx < 0 {
		return uri
	}
	return uri[idx+1:]
}

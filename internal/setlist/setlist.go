// package setlist locates and extracts setlist data from setlist.fm pages.
//
// The page structure is third-party HTML, not a stable contract: every locator
// is narrow and fails with a field-specific error instead of surfacing a
// missing-element lookup as a generic fault.
package setlist

import (
	"net/url"
	"strings"
)

const (
	// Host is the canonical setlist.fm domain accepted by [ValidURL].
	Host = "www.setlist.fm"

	setlistSegment = "/setlist/"
	venueSegment   = "/venue/"
)

// ValidURL reports whether raw is a well-formed setlist.fm setlist URL.
//
// The host must be the canonical domain and the path must contain a setlist
// segment. Invalid URLs are rejected before any network access.
func ValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Host == Host && strings.Contains(parsed.Path, setlistSegment)
}

// ArtistFromURL derives the artist name from a setlist URL's path slug.
//
// The first path segment after /setlist/ is the artist slug; hyphens become
// spaces, e.g. /setlist/circa-waves/2025/... yields "circa waves".
func ArtistFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	_, after, found := strings.Cut(parsed.Path, setlistSegment)
	if !found {
		return ""
	}

	slug, _, _ := strings.Cut(after, "/")
	return SlugToPlain(slug)
}

// SlugToPlain converts a URL slug to plain text by replacing hyphens with spaces.
func SlugToPlain(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

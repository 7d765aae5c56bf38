// package models defines the data model for the setlist conversion pipeline
package models

// Setlist represents one concert's setlist as extracted from a setlist.fm page.
//
// Immutable once built; discarded after the pipeline step completes.
type Setlist struct {
	Artist string   `json:"artist"` // Derived from the URL path slug
	Date   string   `json:"date"`   // Free-form, as rendered by the site
	Venue  string   `json:"venue"`
	Songs  []string `json:"songs"` // Performed songs in document order
	Empty  bool     `json:"empty"` // True when the page carries the empty-setlist marker
}

// Track represents a Spotify catalog track resolved from a song title.
type Track struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	URI    string `json:"uri"` // Opaque reference used when populating playlists
}

// Playlist represents a playlist created on the streaming service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Public      bool   `json:"public"`
}

// User represents the authenticated streaming service account.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// ConvertOptions holds the process-wide run configuration, set once at startup.
type ConvertOptions struct {
	Public  bool // Create public playlists
	Verbose bool // Debug-level logging
}

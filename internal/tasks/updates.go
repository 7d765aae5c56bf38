package tasks

import "fmt"

// ProgressUpdate represents a progress event during one setlist's conversion.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Conversion phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Conversion phase enumeration
type Phase int

const (
	Validate Phase = iota
	FetchPage
	ExtractFields
	ResolveSongs
	CreatePlaylist
	PopulateTracks
)

func (p Phase) String() string {
	switch p {
	case Validate:
		return "validate"
	case FetchPage:
		return "fetch_page"
	case ExtractFields:
		return "extract_fields"
	case ResolveSongs:
		return "resolve_songs"
	case CreatePlaylist:
		return "create_playlist"
	case PopulateTracks:
		return "populate_tracks"
	default:
		return "unknown"
	}
}

func validateUpdate(url string) ProgressUpdate {
	return ProgressUpdate{Phase: Validate, Step: 1, Total: 1, Message: "Validating " + url}
}

func fetchUpdate(url string) ProgressUpdate {
	return ProgressUpdate{Phase: FetchPage, Step: 1, Total: 1, Message: "Fetching " + url}
}

func extractUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: ExtractFields, Step: 1, Total: 1, Message: "Extracting setlist fields"}
}

func resolveUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{Phase: ResolveSongs, Step: step, Total: total, Message: "Searching for " + title}
}

func createUpdate(name string) ProgressUpdate {
	return ProgressUpdate{Phase: CreatePlaylist, Step: 1, Total: 1, Message: "Creating playlist " + name}
}

func populateUpdate(count int) ProgressUpdate {
	return ProgressUpdate{Phase: PopulateTracks, Step: 1, Total: 1, Message: fmt.Sprintf("Adding %d tracks", count)}
}

package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Conversion pipeline errors, one per recoverable failure class
	ErrInvalidURL  = fmt.Errorf("not a setlist.fm setlist URL")
	ErrFetchFailed = fmt.Errorf("failed to fetch setlist page")
	ErrExtraction  = fmt.Errorf("expected page structure absent")
	ErrPlaylist    = fmt.Errorf("playlist operation failed")

	// Extraction errors, one per field so callers can tell which
	// locator broke when setlist.fm changes its markup
	ErrMissingDate     = fmt.Errorf("%w: date block", ErrExtraction)
	ErrMissingVenue    = fmt.Errorf("%w: venue link", ErrExtraction)
	ErrMissingSongList = fmt.Errorf("%w: songs list", ErrExtraction)

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

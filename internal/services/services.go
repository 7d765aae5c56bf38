// package services defines interface Service for the streaming side of the conversion
package services

import (
	"context"

	"github.com/desertthunder/setx/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the streaming-service capabilities the conversion pipeline
// needs: searching the catalog, identifying the session owner, and creating
// and populating playlists.
type Service interface {
	// Authenticate performs OAuth or token authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context) (*models.User, error)

	// SearchTrack searches the catalog with a field-qualified artist + title query.
	// Returns the service's top-ranked candidate, or (nil, nil) when the
	// candidate list is empty. An error indicates a transport or service
	// failure, not a missing match.
	SearchTrack(ctx context.Context, artist, title string) (*models.Track, error)

	// CreatePlaylist creates a playlist owned by the current user.
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error)

	// AddTracks appends the given track references to a playlist in one batch,
	// preserving order.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// Name returns the name of the service (e.g. "Spotify")
	Name() string
}

// OAuthService extends Service with the OAuth2 authorization-code flow used
// by the auth command.
type OAuthService interface {
	Service

	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config for the callback handler.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate installs an [oauth2.Token] as the session credential.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error
}

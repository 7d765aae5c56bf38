// Package services provides the streaming-service session used by the
// conversion pipeline.
//
// The [Service] interface is the capability surface the pipeline depends on:
// track search, current-user lookup, and playlist creation/population.
// [SpotifyService] is the sole implementation, an OAuth2-authenticated client
// for the Spotify Web API. The session is established once at startup and is
// read-only thereafter; token refresh happens transparently inside the
// underlying [golang.org/x/oauth2] transport.
package services

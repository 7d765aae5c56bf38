// Package server implements the short-lived local HTTP server that receives
// the Spotify OAuth2 redirect during the auth command.
//
// [OAuthHandler] validates the CSRF state parameter, exchanges the
// authorization code for tokens, and delivers exactly one [OAuthResult] over
// a channel. [BasicRouter] is a minimal [http.ServeMux] wrapper with
// middleware support used to mount the handler.
package server

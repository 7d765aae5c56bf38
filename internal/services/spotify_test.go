package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/setx/internal/shared"
	"golang.org/x/oauth2"
)

// routeTripper serves canned responses keyed by "METHOD path" and records requests.
type routeTripper struct {
	responses map[string]*http.Response
	err       error
	requests  []*http.Request
	bodies    []string
}

func (rt *routeTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.requests = append(rt.requests, req)

	body := ""
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}
	rt.bodies = append(rt.bodies, body)

	if rt.err != nil {
		return nil, rt.err
	}

	key := req.Method + " " + req.URL.Path
	if resp, ok := rt.responses[key]; ok {
		return resp, nil
	}
	return jsonResponse(http.StatusNotFound, `{}`), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func testService(t *testing.T, rt http.RoundTripper) *SpotifyService {
	t.Helper()

	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	}, false)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	srv.token = &oauth2.Token{AccessToken: "test_access_token"}
	srv.httpClient = &http.Client{Transport: rt}
	return srv
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			credentials := map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
				"redirect_uri":  "http://localhost:9999/callback",
			}

			srv, err := NewSpotifyService(credentials, false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}

			if srv.config.RedirectURL != "http://localhost:9999/callback" {
				t.Errorf("unexpected redirect URI %s", srv.config.RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "x"}, false)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "x"}, false)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Scope follows visibility", func(t *testing.T) {
			credentials := map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
			}

			private, _ := NewSpotifyService(credentials, false)
			if private.config.Scopes[0] != scopeModifyPrivate {
				t.Errorf("expected private scope, got %s", private.config.Scopes[0])
			}

			public, _ := NewSpotifyService(credentials, true)
			if public.config.Scopes[0] != scopeModifyPublic {
				t.Errorf("expected public scope, got %s", public.config.Scopes[0])
			}
		})
	})

	t.Run("GetAuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		}, false)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.GetAuthURL("test_state")
		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Error("auth URL should contain Spotify domain")
		}
		if !strings.Contains(authURL, "test_client_id") {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		}, false)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		t.Run("WithAccessToken", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{
				"access_token": "test_access_token",
			})
			if err != nil {
				t.Errorf("expected no error with access token, got %v", err)
			}

			if srv.token == nil || srv.token.AccessToken != "test_access_token" {
				t.Error("expected token to be installed")
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("SearchTrack", func(t *testing.T) {
		t.Run("returns the first candidate", func(t *testing.T) {
			rt := &routeTripper{responses: map[string]*http.Response{
				"GET /v1/search": jsonResponse(200, `{"tracks":{"items":[
					{"id":"t1","name":"Wasted on You","uri":"spotify:track:t1",
					 "artists":[{"id":"a1","name":"Circa Waves"}],
					 "album":{"id":"al1","name":"Different Creatures"}},
					{"id":"t2","name":"Wasted on You (Live)","uri":"spotify:track:t2"}
				],"total":2}}`),
			}}
			srv := testService(t, rt)

			track, err := srv.SearchTrack(context.Background(), "circa waves", "wasted on you")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if track == nil {
				t.Fatal("expected a match")
			}
			if track.ID != "t1" || track.URI != "spotify:track:t1" {
				t.Errorf("expected first candidate, got %+v", track)
			}
			if track.Artist != "Circa Waves" {
				t.Errorf("expected artist from first candidate, got %q", track.Artist)
			}
			if track.Album != "Different Creatures" {
				t.Errorf("expected album name, got %q", track.Album)
			}

			query := rt.requests[0].URL.Query().Get("q")
			if query != "artist:circa waves track:wasted on you" {
				t.Errorf("unexpected field-qualified query %q", query)
			}
			if rt.requests[0].URL.Query().Get("type") != "track" {
				t.Error("expected type=track in search query")
			}
		})

		t.Run("zero candidates yields nil, not an error", func(t *testing.T) {
			rt := &routeTripper{responses: map[string]*http.Response{
				"GET /v1/search": jsonResponse(200, `{"tracks":{"items":[],"total":0}}`),
			}}
			srv := testService(t, rt)

			track, err := srv.SearchTrack(context.Background(), "circa waves", "unknown song")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if track != nil {
				t.Errorf("expected nil track, got %+v", track)
			}
		})

		t.Run("expired token surfaces ErrTokenExpired", func(t *testing.T) {
			rt := &routeTripper{responses: map[string]*http.Response{
				"GET /v1/search": jsonResponse(401, `{"error":{"status":401}}`),
			}}
			srv := testService(t, rt)

			_, err := srv.SearchTrack(context.Background(), "a", "b")
			if !errors.Is(err, shared.ErrTokenExpired) {
				t.Errorf("expected ErrTokenExpired, got %v", err)
			}
		})

		t.Run("unauthenticated session", func(t *testing.T) {
			srv, _ := NewSpotifyService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
			}, false)

			_, err := srv.SearchTrack(context.Background(), "a", "b")
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	})

	t.Run("CurrentUser", func(t *testing.T) {
		rt := &routeTripper{responses: map[string]*http.Response{
			"GET /v1/me": jsonResponse(200, `{"id":"user123","display_name":"Test User"}`),
		}}
		srv := testService(t, rt)

		user, err := srv.CurrentUser(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.ID != "user123" || user.DisplayName != "Test User" {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		t.Run("posts to the current user's playlists", func(t *testing.T) {
			rt := &routeTripper{responses: map[string]*http.Response{
				"GET /v1/me": jsonResponse(200, `{"id":"user123"}`),
				"POST /v1/users/user123/playlists": jsonResponse(201,
					`{"id":"pl1","name":"Circa Waves - 2025 - Barrowland","public":false}`),
			}}
			srv := testService(t, rt)

			playlist, err := srv.CreatePlaylist(context.Background(), "Circa Waves - 2025 - Barrowland", "Created by Setlist.fm converter", false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlist.ID != "pl1" {
				t.Errorf("expected playlist id pl1, got %s", playlist.ID)
			}

			var body map[string]any
			if err := json.Unmarshal([]byte(rt.bodies[1]), &body); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if body["name"] != "Circa Waves - 2025 - Barrowland" {
				t.Errorf("unexpected name in body: %v", body["name"])
			}
			if body["public"] != false {
				t.Errorf("expected public=false in body, got %v", body["public"])
			}
			if body["description"] != "Created by Setlist.fm converter" {
				t.Errorf("unexpected description in body: %v", body["description"])
			}
		})

		t.Run("service failure wraps ErrPlaylist", func(t *testing.T) {
			rt := &routeTripper{responses: map[string]*http.Response{
				"GET /v1/me":                       jsonResponse(200, `{"id":"user123"}`),
				"POST /v1/users/user123/playlists": jsonResponse(403, `{"error":{"status":403}}`),
			}}
			srv := testService(t, rt)

			_, err := srv.CreatePlaylist(context.Background(), "x", "y", false)
			if !errors.Is(err, shared.ErrPlaylist) {
				t.Errorf("expected ErrPlaylist, got %v", err)
			}
		})
	})

	t.Run("AddTracks", func(t *testing.T) {
		t.Run("sends all URIs in one batch, in order", func(t *testing.T) {
			rt := &routeTripper{responses: map[string]*http.Response{
				"POST /v1/playlists/pl1/tracks": jsonResponse(201, `{"snapshot_id":"snap"}`),
			}}
			srv := testService(t, rt)

			uris := []string{"spotify:track:t1", "spotify:track:t3"}
			if err := srv.AddTracks(context.Background(), "pl1", uris); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(rt.requests) != 1 {
				t.Fatalf("expected one batch request, got %d", len(rt.requests))
			}

			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.Unmarshal([]byte(rt.bodies[0]), &body); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if len(body.URIs) != 2 || body.URIs[0] != "spotify:track:t1" || body.URIs[1] != "spotify:track:t3" {
				t.Errorf("expected ordered URIs, got %v", body.URIs)
			}
		})

		t.Run("empty batch is invalid", func(t *testing.T) {
			srv := testService(t, &routeTripper{})
			err := srv.AddTracks(context.Background(), "pl1", nil)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("service failure wraps ErrPlaylist", func(t *testing.T) {
			rt := &routeTripper{responses: map[string]*http.Response{
				"POST /v1/playlists/pl1/tracks": jsonResponse(500, `{}`),
			}}
			srv := testService(t, rt)

			err := srv.AddTracks(context.Background(), "pl1", []string{"spotify:track:t1"})
			if !errors.Is(err, shared.ErrPlaylist) {
				t.Errorf("expected ErrPlaylist, got %v", err)
			}
		})
	})

	t.Run("Service Interface", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		}, false)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		var _ Service = srv
		var _ OAuthService = srv
	})

	t.Run("refreshableTokenSource", func(t *testing.T) {
		t.Run("calls callback when the token changes", func(t *testing.T) {
			callCount := 0
			mockSource := &mockTokenSource{token: &oauth2.Token{AccessToken: "token1"}}

			source := &refreshableTokenSource{
				source:   mockSource,
				callback: func(token *oauth2.Token) { callCount++ },
				last:     "token1",
			}

			source.Token()
			if callCount != 0 {
				t.Errorf("expected no callback for an unchanged token, got %d", callCount)
			}

			mockSource.token = &oauth2.Token{AccessToken: "token2"}
			source.Token()
			if callCount != 1 {
				t.Errorf("expected callback after refresh, got %d", callCount)
			}

			source.Token()
			if callCount != 1 {
				t.Errorf("expected no further callbacks, got %d", callCount)
			}
		})

		t.Run("propagates source errors", func(t *testing.T) {
			source := &refreshableTokenSource{
				source: &mockTokenSource{err: errors.New("token source error")},
				callback: func(token *oauth2.Token) {
					t.Error("callback should not be called on error")
				},
			}

			if _, err := source.Token(); err == nil {
				t.Fatal("expected error from source")
			}
		})

		t.Run("contains callback panics", func(t *testing.T) {
			source := &refreshableTokenSource{
				source:   &mockTokenSource{token: &oauth2.Token{AccessToken: "t"}},
				callback: func(token *oauth2.Token) { panic("callback panic") },
			}

			token, err := source.Token()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token.AccessToken != "t" {
				t.Error("expected token despite panicking callback")
			}
		})
	})
}

// mockTokenSource implements [oauth2.TokenSource] for testing
type mockTokenSource struct {
	token *oauth2.Token
	err   error
}

func (m *mockTokenSource) Token() (*oauth2.Token, error) {
	return m.token, m.err
}

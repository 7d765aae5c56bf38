package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SpotifySearch resolves a single artist + track query and prints the top match.
func (r *Runner) SpotifySearch(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.String("artist")
	title := cmd.String("track")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	r.logger.Infof("searching for %s - %s", artist, title)

	track, err := r.spotify.SearchTrack(ctx, artist, title)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if track == nil {
		r.writePlain("No match for %s - %s\n", artist, title)
		return nil
	}

	if useJSON {
		return r.writeJSON(track, pretty)
	}

	r.writePlain("%s - %s\n", track.Artist, track.Title)
	if track.Album != "" {
		r.writePlain("  Album: %s\n", track.Album)
	}
	r.writePlain("  URI: %s\n", track.URI)

	return nil
}

// SpotifyWhoami prints the authenticated user's profile.
func (r *Runner) SpotifyWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	user, err := r.spotify.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if user.DisplayName != "" {
		r.writePlain("%s (%s)\n", user.DisplayName, user.ID)
	} else {
		r.writePlain("%s\n", user.ID)
	}

	return nil
}

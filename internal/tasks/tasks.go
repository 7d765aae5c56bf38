// package tasks implements the setlist → playlist conversion pipeline.
//
// The core abstraction is ConvertEngine, which processes one setlist URL at a
// time through a strictly sequential state machine: validate, fetch, extract,
// resolve, build. Every failure is converted into a terminal [Outcome] for
// that URL; nothing propagates out to abort the batch. Progress is emitted via
// channels for non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/setx/internal/models"
	"github.com/desertthunder/setx/internal/services"
	"github.com/desertthunder/setx/internal/setlist"
	"github.com/desertthunder/setx/internal/shared"
)

// playlistDescription is the fixed description attached to every created playlist.
const playlistDescription = "Created by Setlist.fm converter"

// State is the terminal state of one URL's processing. No state is retried.
type State int

const (
	PlaylistCreated State = iota
	SkippedInvalidURL
	SkippedFetchError
	SkippedExtractionError
	SkippedEmptySetlist
	SkippedNoMatches
	SkippedPlaylistError
)

func (s State) String() string {
	switch s {
	case PlaylistCreated:
		return "playlist_created"
	case SkippedInvalidURL:
		return "skipped_invalid_url"
	case SkippedFetchError:
		return "skipped_fetch_error"
	case SkippedExtractionError:
		return "skipped_extraction_error"
	case SkippedEmptySetlist:
		return "skipped_empty_setlist"
	case SkippedNoMatches:
		return "skipped_no_matches"
	case SkippedPlaylistError:
		return "skipped_playlist_error"
	default:
		return "unknown"
	}
}

// Created reports whether the URL's processing ended with a playlist.
func (s State) Created() bool {
	return s == PlaylistCreated
}

// Outcome summarizes the processing of one setlist URL.
type Outcome struct {
	URL      string
	State    State
	Setlist  *models.Setlist // Extracted record, nil before extraction succeeds
	Playlist *models.Playlist
	Resolved int   // Songs matched to tracks
	Total    int   // Songs extracted
	Err      error // Cause for skipped states
}

// DocumentFetcher retrieves and parses one setlist page.
//
// This abstraction allows for easier testing and decoupling from the concrete
// HTTP implementation.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// ConvertEngine orchestrates the per-URL conversion pipeline.
//
// Options and collaborators are injected at construction; the engine holds no
// mutable state across URLs.
type ConvertEngine struct {
	service   services.Service
	fetcher   DocumentFetcher
	extractor *setlist.Extractor
	options   models.ConvertOptions
	logger    *log.Logger
}

// NewConvertEngine creates a ConvertEngine with the provided collaborators.
func NewConvertEngine(service services.Service, fetcher DocumentFetcher, options models.ConvertOptions, logger *log.Logger) *ConvertEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ConvertEngine{
		service:   service,
		fetcher:   fetcher,
		extractor: setlist.NewExtractor(),
		options:   options,
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ConvertEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run processes each URL in input order and returns one Outcome per URL.
func (e *ConvertEngine) Run(ctx context.Context, urls []string, progress chan<- ProgressUpdate) []Outcome {
	outcomes := make([]Outcome, 0, len(urls))
	for _, url := range urls {
		outcomes = append(outcomes, e.Process(ctx, url, progress))
	}
	return outcomes
}

// Process runs the conversion state machine for a single setlist URL.
//
// Every error is caught here and mapped to a terminal state; the returned
// Outcome is the only way failures surface.
func (e *ConvertEngine) Process(ctx context.Context, url string, progress chan<- ProgressUpdate) Outcome {
	outcome := Outcome{URL: url}
	logger := shared.WithLogger(e.logger, "url", url)

	e.sendProgress(progress, validateUpdate(url))
	if !setlist.ValidURL(url) {
		outcome.State = SkippedInvalidURL
		outcome.Err = shared.ErrInvalidURL
		logger.Error("invalid setlist URL")
		return outcome
	}

	e.sendProgress(progress, fetchUpdate(url))
	doc, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		outcome.State = SkippedFetchError
		outcome.Err = err
		logger.Errorf("failed to fetch setlist: %v", err)
		return outcome
	}

	e.sendProgress(progress, extractUpdate())
	artist := setlist.ArtistFromURL(url)
	record, err := e.extractor.Extract(doc, artist)
	if err != nil {
		outcome.State = SkippedExtractionError
		outcome.Err = err
		logger.Errorf("failed to extract setlist: %v", err)
		return outcome
	}

	outcome.Setlist = record
	outcome.Total = len(record.Songs)
	logger.Infof("processing setlist for %s at %s on %s", record.Artist, record.Venue, record.Date)

	if record.Empty {
		outcome.State = SkippedEmptySetlist
		logger.Warn("setlist is empty, skipping")
		return outcome
	}

	uris := e.resolveAll(ctx, record, progress)
	outcome.Resolved = len(uris)

	if len(uris) == 0 {
		outcome.State = SkippedNoMatches
		logger.Warn("no songs found on Spotify, skipping playlist creation")
		return outcome
	}

	name := PlaylistName(record)

	e.sendProgress(progress, createUpdate(name))
	playlist, err := e.service.CreatePlaylist(ctx, name, playlistDescription, e.options.Public)
	if err != nil {
		outcome.State = SkippedPlaylistError
		outcome.Err = err
		logger.Errorf("failed to create playlist: %v", err)
		return outcome
	}
	outcome.Playlist = playlist

	e.sendProgress(progress, populateUpdate(len(uris)))
	if err := e.service.AddTracks(ctx, playlist.ID, uris); err != nil {
		// The playlist exists but is empty or partial; logged and left as-is.
		outcome.State = SkippedPlaylistError
		outcome.Err = err
		logger.Errorf("failed to add tracks to playlist: %v", err)
		return outcome
	}

	outcome.State = PlaylistCreated
	logger.Infof("created playlist %q with %d of %d songs", name, len(uris), outcome.Total)
	return outcome
}

// resolveAll resolves every extracted song title in order, collecting only the
// matches. Unresolved songs are dropped, not reordered.
func (e *ConvertEngine) resolveAll(ctx context.Context, record *models.Setlist, progress chan<- ProgressUpdate) []string {
	total := len(record.Songs)
	uris := make([]string, 0, total)

	for i, title := range record.Songs {
		e.sendProgress(progress, resolveUpdate(i+1, total, title))
		if track := e.resolve(ctx, record.Artist, title); track != nil {
			uris = append(uris, track.URI)
		}
	}

	return uris
}

// resolve matches one song title to a catalog track.
//
// The first search candidate is taken as the match with no confidence
// threshold; the service's relevance ranking is trusted. Both an empty
// candidate list and a transport failure yield nil so that one song's
// resolution can never abort the rest of the setlist.
func (e *ConvertEngine) resolve(ctx context.Context, artist, title string) *models.Track {
	track, err := e.service.SearchTrack(ctx, artist, title)
	if err != nil {
		e.logger.Errorf("error searching for song %q: %v", title, err)
		return nil
	}

	if track == nil {
		e.logger.Warnf("could not find song: %s - %s", artist, title)
		return nil
	}

	return track
}

// PlaylistName composes the playlist name as "{artist} - {date} - {venue}",
// title-cased per word. Deterministic and idempotent.
func PlaylistName(record *models.Setlist) string {
	return shared.TitleCase(fmt.Sprintf("%s - %s - %s", record.Artist, record.Date, record.Venue))
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setx/internal/models"
	"github.com/desertthunder/setx/internal/shared"
	"github.com/desertthunder/setx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Convert runs the conversion pipeline over the supplied setlist URLs.
//
// URLs come from positional arguments and/or a one-per-line file. Each URL is
// processed independently and sequentially; per-URL failures are reported in
// the summary, never aborting the batch.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	public := cmd.Bool("public")
	verbose := cmd.Bool("verbose")
	inputFile := cmd.String("file")

	if verbose {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	urls := cmd.Args().Slice()
	if inputFile != "" {
		fileURLs, err := readURLFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		urls = append(urls, fileURLs...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("%w: provide either URLs or an input file", shared.ErrMissingArgument)
	}

	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	options := models.ConvertOptions{Public: public, Verbose: verbose}
	engine := tasks.NewConvertEngine(r.spotify, r.fetcher, options, r.logger)

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debugf("[%s] %s", update.Phase, update.Message)
		}
	}()

	outcomes := engine.Run(ctx, urls, progress)
	close(progress)
	<-done

	r.writeSummary(outcomes)
	return nil
}

// writeSummary prints one styled line per URL plus totals.
func (r *Runner) writeSummary(outcomes []tasks.Outcome) {
	created := 0

	r.writePlainln("%s", r.palette.Title(fmt.Sprintf("Processed %d setlist(s)", len(outcomes))))

	for _, outcome := range outcomes {
		switch {
		case outcome.State.Created():
			created++
			r.writePlain("%s %s\n", r.palette.Ok("✓"), outcome.Playlist.Name)
			r.writePlain("  %s\n", r.palette.Help(fmt.Sprintf("%d of %d songs · %s", outcome.Resolved, outcome.Total, outcome.URL)))
		case outcome.State == tasks.SkippedEmptySetlist || outcome.State == tasks.SkippedNoMatches:
			r.writePlain("%s %s\n", r.palette.Warn("⚠"), outcome.URL)
			r.writePlain("  %s\n", r.palette.Help(outcome.State.String()))
		default:
			r.writePlain("%s %s\n", r.palette.Err("✗"), outcome.URL)
			r.writePlain("  %s\n", r.palette.Help(fmt.Sprintf("%s: %v", outcome.State, outcome.Err)))
		}
	}

	r.writePlainln("%d playlist(s) created", created)
}

// readURLFile reads setlist URLs one per line, skipping blank lines.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return urls, nil
}

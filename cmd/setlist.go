package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/setx/internal/formatter"
	"github.com/desertthunder/setx/internal/models"
	"github.com/desertthunder/setx/internal/setlist"
	"github.com/desertthunder/setx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetlistInspect fetches a setlist page and prints the extracted record
// without touching Spotify.
func (r *Runner) SetlistInspect(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	outputFile := cmd.String("output")

	if url == "" {
		return fmt.Errorf("%w: setlist URL", shared.ErrMissingArgument)
	}

	if !setlist.ValidURL(url) {
		return fmt.Errorf("%w: %s", shared.ErrInvalidURL, url)
	}

	r.logger.Infof("inspecting setlist %v", url)

	doc, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	record, err := setlist.NewExtractor().Extract(doc, setlist.ArtistFromURL(url))
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := exportRecord(record, outputFile); err != nil {
			return err
		}
		r.writePlain("✓ Setlist exported to %s\n", outputFile)
		return nil
	}

	if useJSON {
		return r.writeJSON(record, pretty)
	}

	text, err := formatter.ExportToText(record)
	if err != nil {
		return err
	}
	return r.writePlain("%s", string(text))
}

// exportRecord writes the record in the format implied by the file extension.
func exportRecord(record *models.Setlist, path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".csv":
		data, err = formatter.ExportToCSV(record)
	case ".md":
		data, err = formatter.ExportToMarkdown(record)
	case ".json":
		data, err = formatter.ToJSON(record, true)
	default:
		data, err = formatter.ExportToText(record)
	}

	if err != nil {
		return fmt.Errorf("failed to format setlist: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

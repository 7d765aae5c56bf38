// package formatter provides functions to export extracted setlists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/setx/internal/models"
	"github.com/desertthunder/setx/internal/shared"
)

// ExportToCSV converts a Setlist to CSV format with columns: Position, Song
func ExportToCSV(record *models.Setlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Song"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range record.Songs {
		if err := writer.Write([]string{strconv.Itoa(i + 1), song}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Setlist to Markdown format.
func ExportToMarkdown(record *models.Setlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", shared.TitleCase(record.Artist)))
	buf.WriteString(fmt.Sprintf("**Date**: %s\n", record.Date))
	buf.WriteString(fmt.Sprintf("**Venue**: %s\n", record.Venue))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(record.Songs)))

	if record.Empty {
		buf.WriteString("_Empty setlist._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Songs\n\n")
	for i, song := range record.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, song))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Setlist to plain text format.
func ExportToText(record *models.Setlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Artist: %s\n", record.Artist))
	buf.WriteString(fmt.Sprintf("Date: %s\n", record.Date))
	buf.WriteString(fmt.Sprintf("Venue: %s\n", record.Venue))

	if record.Empty {
		buf.WriteString("\nEmpty setlist.\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(record.Songs)))
	for i, song := range record.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, song))
	}

	return buf.Bytes(), nil
}

// ToJSON generates a JSON representation of the setlist record.
func ToJSON(record *models.Setlist, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(record, pretty)
}

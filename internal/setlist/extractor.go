package setlist

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/setx/internal/models"
	"github.com/desertthunder/setx/internal/shared"
)

// Extractor reads setlist fields out of a parsed setlist.fm document.
//
// Each method targets one narrow locator and returns the matching sentinel
// error from [shared] when the expected element is absent.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsEmpty reports whether the page carries the empty-setlist marker element.
//
// Must be checked before [Extractor.Songs]; an empty setlist is not an error.
func (e *Extractor) IsEmpty(doc *goquery.Document) bool {
	return doc.Find("div.emptySetlist").Length() > 0
}

// Date extracts the concert date from the date block.
//
// The block renders day, month, and year on separate lines, so line breaks are
// collapsed to single spaces. Returns [shared.ErrMissingDate] when the
// container is absent.
func (e *Extractor) Date(doc *goquery.Document) (string, error) {
	block := doc.Find("div.dateBlockContainer div.dateBlock").First()
	if block.Length() == 0 {
		return "", shared.ErrMissingDate
	}
	return shared.CollapseWhitespace(block.Text()), nil
}

// Venue extracts the venue name from the first venue link in the headline.
//
// Returns [shared.ErrMissingVenue] when no such link exists.
func (e *Extractor) Venue(doc *goquery.Document) (string, error) {
	link := doc.Find(".setlistHeadline a[href*='" + venueSegment + "']").First()
	if link.Length() == 0 {
		return "", shared.ErrMissingVenue
	}
	return strings.TrimSpace(link.Text()), nil
}

// Songs extracts the performed song titles in document order.
//
// Looks inside the first ordered list marked as the songs list and collects
// the trimmed text of every song-label link, dropping entries that trim to
// empty. Returns [shared.ErrMissingSongList] when the list container itself is
// absent, which is distinct from the empty-setlist marker.
func (e *Extractor) Songs(doc *goquery.Document) ([]string, error) {
	list := doc.Find("ol.songsList").First()
	if list.Length() == 0 {
		return nil, shared.ErrMissingSongList
	}

	var titles []string
	list.Find("a.songLabel").Each(func(_ int, label *goquery.Selection) {
		if title := strings.TrimSpace(label.Text()); title != "" {
			titles = append(titles, title)
		}
	})

	return titles, nil
}

// Extract builds a full [models.Setlist] from a parsed document.
//
// The empty check short-circuits song extraction: a page with the marker
// yields a record with Empty set and no songs, not an error.
func (e *Extractor) Extract(doc *goquery.Document, artist string) (*models.Setlist, error) {
	date, err := e.Date(doc)
	if err != nil {
		return nil, err
	}

	venue, err := e.Venue(doc)
	if err != nil {
		return nil, err
	}

	record := &models.Setlist{Artist: artist, Date: date, Venue: venue}

	if e.IsEmpty(doc) {
		record.Empty = true
		return record, nil
	}

	songs, err := e.Songs(doc)
	if err != nil {
		return nil, err
	}
	record.Songs = songs

	return record, nil
}

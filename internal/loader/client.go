package loader

import (
	"fmt"

	"orderlens/internal/config"
	"orderlens/internal/models"
)

// Client ties the fetcher to the decoders and picks the right load path
// for a configured source.
type Client struct {
	fetcher *Fetcher
}

// NewClient creates a new loader client with default dependencies.
func NewClient() *Client {
	return &Client{fetcher: NewFetcher()}
}

// NewClientWithFetcher creates a new loader client with an injected fetcher.
func NewClientWithFetcher(fetcher *Fetcher) *Client {
	return &Client{fetcher: fetcher}
}

// LoadSheet fetches a Google Sheet via its gviz JSON export and returns the
// raw rows. A failed fetch returns an error and no rows; the caller's prior
// state stays untouched.
func (c *Client) LoadSheet(ref string) ([]models.RawRecord, error) {
	sheetID, err := ExtractSheetID(ref)
	if err != nil {
		return nil, err
	}

	body, err := c.fetcher.Fetch(GvizURL(sheetID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %s: %w", sheetID, err)
	}

	records, err := ParseGviz(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet %s: %w", sheetID, err)
	}

	return records, nil
}

// LoadURL fetches a plain JSON export from an arbitrary URL.
func (c *Client) LoadURL(url string) ([]models.RawRecord, error) {
	body, err := c.fetcher.Fetch(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	records, err := DecodeRows([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}

	return records, nil
}

// LoadFile reads a plain JSON export from a local file.
func (c *Client) LoadFile(path string) ([]models.RawRecord, error) {
	content, err := c.fetcher.ReadLocalFile(path)
	if err != nil {
		return nil, err
	}

	records, err := DecodeRows([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return records, nil
}

// LoadSource loads whichever location a configured source points at.
func (c *Client) LoadSource(src config.SourceConfig) ([]models.RawRecord, error) {
	switch {
	case src.SheetID != "":
		return c.LoadSheet(src.SheetID)
	case src.URL != "":
		return c.LoadURL(src.URL)
	default:
		return c.LoadFile(src.File)
	}
}

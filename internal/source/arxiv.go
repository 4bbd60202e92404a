package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ArxivClient queries the arXiv Atom API for paper metadata.
type ArxivClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewArxivClient creates a client for the given query endpoint, typically
// https://export.arxiv.org/api/query. The timeout bounds each lookup.
func NewArxivClient(baseURL string, timeout time.Duration) *ArxivClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ArxivClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ArxivEntry is the metadata papergest needs from a feed entry.
type ArxivEntry struct {
	ID     string
	Title  string
	PDFURL string
}

// Lookup queries the API for exactly one id. A feed with no entries means the
// paper does not exist and yields a NotFoundError.
func (c *ArxivClient) Lookup(ctx context.Context, id string) (*ArxivEntry, error) {
	url := fmt.Sprintf("%s?id_list=%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse arxiv feed: %w", err)
	}
	if len(feed.Entries) == 0 {
		return nil, &NotFoundError{Source: "arxiv:" + id}
	}

	entry := feed.Entries[0]
	// The entry id is a URL like http://arxiv.org/abs/2301.00001v1; the feed
	// can answer an id_list query with a bare entry carrying no id at all,
	// which arXiv uses for unknown identifiers.
	paperID := parseEntryID(entry.ID)
	if paperID == "" {
		return nil, &NotFoundError{Source: "arxiv:" + id}
	}

	pdfURL := ""
	for _, l := range entry.Links {
		if l.Title == "pdf" || strings.Contains(l.Href, "/pdf/") {
			pdfURL = l.Href
			break
		}
	}
	if pdfURL == "" {
		pdfURL = "https://arxiv.org/pdf/" + paperID
	}

	return &ArxivEntry{
		ID:     paperID,
		Title:  strings.TrimSpace(entry.Title),
		PDFURL: pdfURL,
	}, nil
}

// parseEntryID extracts "2301.00001" from "http://arxiv.org/abs/2301.00001v1".
func parseEntryID(raw string) string {
	idx := strings.LastIndex(raw, "/abs/")
	if idx < 0 {
		return ""
	}
	id := raw[idx+5:]
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		id = id[:vIdx]
	}
	return id
}

// Atom feed structures for the arXiv API.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID    string     `xml:"id"`
	Title string     `xml:"title"`
	Links []atomLink `xml:"link"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

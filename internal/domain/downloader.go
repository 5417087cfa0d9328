package domain

import "context"

// Metadata describes the target of a download request, resolved from a
// metadata-only probe. Items is always at least 1: a URL with no playlist
// entries is a single video. Unavailable playlist entries are excluded
// from the count.
type Metadata struct {
	Title    string
	Items    int
	Playlist bool
}

// Downloader defines the interface for a download backend
type Downloader interface {
	// Validate validates if the downloader can handle the given URL
	Validate(url string) error

	// FetchMetadata resolves a URL into item count and title without
	// downloading anything
	FetchMetadata(ctx context.Context, url string) (*Metadata, error)

	// Download downloads the URL's items and reports per-item progress
	// through the optional callback
	Download(ctx context.Context, req *Request, progress ProgressFunc) (Summary, error)
}

// Package blogspot reads the JSON feed of a Blogspot blog and reports each
// post to registered listeners.
//
// This package enables blogfeed to:
// - Fetch a blog's posts with a single bounded HTTP request
// - Tolerate missing or malformed entry fields without failing the read
// - Fan out success, failure, and per-post events in registration order
package blogspot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Status values passed to success and failure listeners.
const (
	StatusSuccess    = "success"
	StatusError      = "error"
	StatusParseError = "parsererror"
)

// ErrUnexpectedStatus is wrapped by the thrown error of a non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Post is one feed entry after parsing.
type Post struct {
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	TruncatedContent string          `json:"truncated_content"`
	Summary          string          `json:"summary"`
	TruncatedSummary string          `json:"truncated_summary"`
	PublishedAt      time.Time       `json:"published_at"`
	FormattedDate    string          `json:"formatted_date"`
	PermalinkURL     string          `json:"permalink_url,omitempty"`
	CommentURL       string          `json:"comment_url,omitempty"`
	CommentCount     int             `json:"comment_count"`
	Entry            json.RawMessage `json:"entry,omitempty"`
}

// DateFormatter renders a post's publication instant.
type DateFormatter func(time.Time) string

// DefaultDateFormatter renders t in UTC as "Sun, 15 Mar 2020 13:45:30 GMT".
func DefaultDateFormatter(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// SuccessListener is called once per Read whose response held entries.
type SuccessListener func(status string)

// FailureListener is called once per Read that produced no entries.
// After a transport failure transport and thrown describe what went wrong.
// When the response arrived but had no entries both are nil.
type FailureListener func(status string, transport *TransportError, thrown error)

// ReadListener is called once per processed entry. permalinkURL and
// commentURL are empty when the entry has no matching link.
type ReadListener func(
	title, truncatedContent, content, truncatedSummary, summary, formattedDate, permalinkURL string,
	commentCount int,
	commentURL string,
	entry json.RawMessage,
)

// OnPost adapts fn to a ReadListener for callers that prefer a Post value.
func OnPost(fn func(Post)) ReadListener {
	if fn == nil {
		return nil
	}
	return func(title, truncatedContent, content, truncatedSummary, summary, formattedDate, permalinkURL string,
		commentCount int, commentURL string, entry json.RawMessage) {
		fn(Post{
			Title:            title,
			Content:          content,
			TruncatedContent: truncatedContent,
			Summary:          summary,
			TruncatedSummary: truncatedSummary,
			FormattedDate:    formattedDate,
			PermalinkURL:     permalinkURL,
			CommentURL:       commentURL,
			CommentCount:     commentCount,
			Entry:            entry,
			PublishedAt:      publishedAt(entry),
		})
	}
}

// TransportError describes a request that did not yield a usable response.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode > 299) {
		return fmt.Sprintf("blogspot feed returned HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("blogspot feed %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

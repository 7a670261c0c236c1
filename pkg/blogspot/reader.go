package blogspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 5 * time.Second
	feedURLFormat  = "http://%s.blogspot.com/feeds/posts/default?alt=json-in-script"
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReaderOption configures the Reader.
type ReaderOption func(*Reader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ReaderOption {
	return func(r *Reader) {
		if httpClient != nil {
			r.httpClient = httpClient
		}
	}
}

// WithFeedURL replaces the URL derived from the blog name (useful for testing).
func WithFeedURL(url string) ReaderOption {
	return func(r *Reader) {
		if url != "" {
			r.feedURL = url
		}
	}
}

// WithDateFormatter sets the formatter used for each post's date.
func WithDateFormatter(f DateFormatter) ReaderOption {
	return func(r *Reader) {
		if f != nil {
			r.formatDate = f
		}
	}
}

// WithTimeout bounds each request. The default is five seconds.
func WithTimeout(d time.Duration) ReaderOption {
	return func(r *Reader) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *zap.Logger) ReaderOption {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reader fetches a Blogspot feed and notifies listeners about the outcome.
//
// Configuration may change at any time; each Read works on a copy taken when
// it was called. Listeners are never removed.
type Reader struct {
	feedURL    string
	httpClient HTTPClient
	timeout    time.Duration
	logger     *zap.Logger

	mu               sync.Mutex
	formatDate       DateFormatter
	truncateTo       int
	successListeners []SuccessListener
	failureListeners []FailureListener
	readListeners    []ReadListener

	// dispatchMu keeps the listener calls of one response from interleaving
	// with those of another.
	dispatchMu sync.Mutex
}

// NewReader creates a reader for the blog hosted at {blogName}.blogspot.com.
func NewReader(blogName string, opts ...ReaderOption) *Reader {
	r := &Reader{
		feedURL:    fmt.Sprintf(feedURLFormat, blogName),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logger:     zap.NewNop(),
		formatDate: DefaultDateFormatter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FeedURL returns the URL requested by Read.
func (r *Reader) FeedURL() string {
	return r.feedURL
}

// SetDateFormatter replaces the date formatter. A nil f is ignored.
func (r *Reader) SetDateFormatter(f DateFormatter) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatDate = f
}

// SetContentTruncation sets the length content and summaries are truncated
// to. Zero or a negative value turns truncation off.
func (r *Reader) SetContentTruncation(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.truncateTo = n
}

// AddSuccessListener registers l for the success event.
func (r *Reader) AddSuccessListener(l SuccessListener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successListeners = append(r.successListeners, l)
}

// AddFailureListener registers l for the failure event.
func (r *Reader) AddFailureListener(l FailureListener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failureListeners = append(r.failureListeners, l)
}

// AddReadListener registers l for the per-post read event.
func (r *Reader) AddReadListener(l ReadListener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readListeners = append(r.readListeners, l)
}

// readRequest is the state a single Read works with.
type readRequest struct {
	maxItems   int
	truncateTo int
	formatDate DateFormatter
	success    []SuccessListener
	failure    []FailureListener
	read       []ReadListener
}

// Read fetches the feed in the background and returns immediately. Up to
// maxItems posts are reported, in feed order; zero or a negative value
// reports all of them.
//
// The returned channel is closed once every listener has been notified.
// Calls are independent: a second Read issued before the first finishes
// makes its own request.
func (r *Reader) Read(maxItems int) <-chan struct{} {
	req := r.snapshot(maxItems)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.run(req)
	}()
	return done
}

func (r *Reader) snapshot(maxItems int) readRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return readRequest{
		maxItems:   maxItems,
		truncateTo: r.truncateTo,
		formatDate: r.formatDate,
		success:    slices.Clone(r.successListeners),
		failure:    slices.Clone(r.failureListeners),
		read:       slices.Clone(r.readListeners),
	}
}

func (r *Reader) run(req readRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	r.logger.Debug("fetching blog feed",
		zap.String("url", r.feedURL),
		zap.Int("max_items", req.maxItems))

	resp, terr := r.fetch(ctx)

	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	if terr != nil {
		r.logger.Warn("blog feed request failed", zap.String("url", r.feedURL), zap.Error(terr))
		req.fail(StatusError, terr)
		return
	}

	entries, err := decodeEntries(resp.body)
	if err != nil {
		r.logger.Warn("blog feed is not valid JSON", zap.String("url", r.feedURL), zap.Error(err))
		req.fail(StatusParseError, &TransportError{
			URL:        r.feedURL,
			StatusCode: resp.statusCode,
			Status:     resp.status,
			Err:        err,
		})
		return
	}

	if len(entries) == 0 {
		r.logger.Debug("blog feed has no entries", zap.String("url", r.feedURL))
		for _, l := range req.failure {
			l(StatusSuccess, nil, nil)
		}
		return
	}

	for _, l := range req.success {
		l(StatusSuccess)
	}

	n := len(entries)
	if req.maxItems > 0 {
		n = min(req.maxItems, n)
	}
	for _, raw := range entries[:n] {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		req.publish(parseEntry(raw, req.truncateTo, req.formatDate))
	}

	r.logger.Debug("blog feed read",
		zap.String("url", r.feedURL),
		zap.Int("entries", len(entries)),
		zap.Int("published", n))
}

func (req readRequest) fail(status string, terr *TransportError) {
	for _, l := range req.failure {
		l(status, terr, terr.Err)
	}
}

func (req readRequest) publish(p Post) {
	for _, l := range req.read {
		l(p.Title, p.TruncatedContent, p.Content, p.TruncatedSummary, p.Summary, p.FormattedDate,
			p.PermalinkURL, p.CommentCount, p.CommentURL, p.Entry)
	}
}

type response struct {
	statusCode int
	status     string
	body       []byte
}

func (r *Reader) fetch(ctx context.Context) (*response, *TransportError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.feedURL, nil)
	if err != nil {
		return nil, &TransportError{URL: r.feedURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json, text/javascript")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: r.feedURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			URL:        r.feedURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			URL:        r.feedURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("failed to read feed: %w", err),
		}
	}

	return &response{statusCode: resp.StatusCode, status: resp.Status, body: body}, nil
}

// decodeEntries returns the feed.entry array. A body that is JSON but lacks
// the array yields no entries and no error.
func decodeEntries(body []byte) ([]json.RawMessage, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(unwrapScript(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	feed := decodeObject(decodeObject(doc)["feed"])
	var entries []json.RawMessage
	if err := json.Unmarshal(feed["entry"], &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// unwrapScript strips a JSONP callback such as "handle({...});" so the
// json-in-script response can be decoded.
func unwrapScript(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed
	}
	open := bytes.IndexByte(trimmed, '(')
	end := bytes.LastIndexByte(trimmed, ')')
	if open < 0 || end <= open {
		return trimmed
	}
	return trimmed[open+1 : end]
}

// Package aggregator collects the posts reported by a blog reader so they
// can be filtered and displayed once the read completes.
//
// This package enables blogfeed to:
// - Gather posts from read events in the order they arrive
// - Filter posts by publication date range
// - Limit the number of posts shown
package aggregator

import "time"

// FeedOptions configures feed retrieval.
type FeedOptions struct {
	Limit int
	Since time.Time
	Until time.Time
}

// matches reports whether a post published at t falls inside the range.
// Undated posts only pass when no range is set.
func (o FeedOptions) matches(t time.Time) bool {
	if o.Since.IsZero() && o.Until.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !o.Since.IsZero() && t.Before(o.Since) {
		return false
	}
	if !o.Until.IsZero() && t.After(o.Until) {
		return false
	}
	return true
}

// Package export renders read posts as a syndication feed (RSS, Atom or JSON Feed).
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/gauthierbraillon/blogfeed/pkg/blogspot"
)

// Format identifies an output syndication format.
type Format string

const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatRSS, FormatAtom, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be 'rss', 'atom' or 'json'", s)
	}
}

// Meta describes the feed being rendered.
type Meta struct {
	Title       string
	Link        string
	Description string
	Updated     time.Time
}

// BlogMeta returns the metadata of a Blogspot blog.
func BlogMeta(blogName string) Meta {
	return Meta{
		Title: blogName,
		Link:  fmt.Sprintf("http://%s.blogspot.com/", blogName),
	}
}

// Render converts posts into a feed document of the given format.
func Render(format Format, meta Meta, posts []blogspot.Post) (string, error) {
	feed := buildFeed(meta, posts)

	var (
		out string
		err error
	)
	switch format {
	case FormatRSS:
		out, err = feed.ToRss()
	case FormatAtom:
		out, err = feed.ToAtom()
	case FormatJSON:
		out, err = feed.ToJSON()
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render %s feed: %w", format, err)
	}
	return out, nil
}

func buildFeed(meta Meta, posts []blogspot.Post) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       meta.Title,
		Link:        &feeds.Link{Href: meta.Link},
		Description: meta.Description,
		Id:          meta.Link,
		Updated:     meta.Updated,
		Items:       make([]*feeds.Item, 0, len(posts)),
	}

	for _, p := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: p.PermalinkURL},
			Id:          p.PermalinkURL,
			Description: p.TruncatedSummary,
			Content:     p.Content,
			Created:     p.PublishedAt,
		})
		if feed.Updated.Before(p.PublishedAt) {
			feed.Updated = p.PublishedAt
		}
	}
	return feed
}

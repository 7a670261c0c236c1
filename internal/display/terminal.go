// Package display provides terminal output formatting for blogfeed.
package display

import (
	"fmt"
	"strings"

	"github.com/gauthierbraillon/blogfeed/pkg/blogspot"
)

const separator = " • "

// TerminalFormatter formats blog posts for terminal display.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatPost formats a single post for display.
func (f *TerminalFormatter) FormatPost(post blogspot.Post) string {
	var lines []string

	title := post.Title
	if title == "" {
		title = "(untitled)"
	}
	lines = append(lines, title)

	// Date and comments
	if meta := f.formatMeta(post); meta != "" {
		lines = append(lines, "  "+meta)
	}

	if excerpt := f.excerpt(post); excerpt != "" {
		lines = append(lines, "  "+excerpt)
	}

	if post.PermalinkURL != "" {
		lines = append(lines, "  "+post.PermalinkURL)
	}

	return strings.Join(lines, "\n") + "\n"
}

func (f *TerminalFormatter) formatMeta(post blogspot.Post) string {
	var parts []string

	if post.FormattedDate != "" {
		parts = append(parts, post.FormattedDate)
	}
	if post.CommentCount > 0 {
		parts = append(parts, pluralize(post.CommentCount, "comment"))
	}

	return strings.Join(parts, separator)
}

// excerpt prefers the summary and falls back to the content.
func (f *TerminalFormatter) excerpt(post blogspot.Post) string {
	text := post.TruncatedSummary
	if text == "" {
		text = post.TruncatedContent
	}
	return strings.Join(strings.Fields(text), " ")
}

// FormatPosts formats multiple posts for display.
func (f *TerminalFormatter) FormatPosts(posts []blogspot.Post) string {
	if len(posts) == 0 {
		return "No posts to display.\n"
	}

	var formatted []string
	for _, post := range posts {
		formatted = append(formatted, f.FormatPost(post))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// pluralize returns "1 unit" or "N units" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

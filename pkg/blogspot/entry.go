package blogspot

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Blogger's timestamps look like 2011-06-07T10:30:00.000-07:00. Only negative
// whole-hour offsets are understood; anything else leaves the post undated.
var publishedPattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})\.(\d{3})-0*(\d+):00`)

const (
	relAlternate = "alternate"
	relReplies   = "replies"
	typeHTML     = "text/html"
)

// object is a JSON object whose members are decoded lazily, so a malformed
// member never spoils its siblings.
type object map[string]json.RawMessage

func decodeObject(raw json.RawMessage) object {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

func (o object) str(key string) string {
	var s string
	if err := json.Unmarshal(o[key], &s); err != nil {
		return ""
	}
	return s
}

// text returns the "$t" member of the object stored under key.
func (o object) text(key string) string {
	return decodeObject(o[key]).str("$t")
}

// parseEntry turns one feed entry into a Post. Every field falls back to its
// zero value when the entry does not have the expected shape.
func parseEntry(raw json.RawMessage, truncateTo int, format DateFormatter) Post {
	entry := decodeObject(raw)

	post := Post{
		Title:        entry.text("title"),
		Content:      entry.text("content"),
		Summary:      entry.text("summary"),
		CommentCount: commentCount(entry),
		Entry:        raw,
	}

	post.TruncatedContent = post.Content
	post.TruncatedSummary = post.Summary
	if truncateTo > 0 {
		post.TruncatedContent = Truncate(post.Content, truncateTo)
		post.TruncatedSummary = Truncate(post.Summary, truncateTo)
	}

	if t, ok := parsePublished(entry.text("published")); ok {
		post.PublishedAt = t
		post.FormattedDate = format(t)
	}

	post.PermalinkURL, post.CommentURL = findLinks(entry)
	return post
}

func publishedAt(raw json.RawMessage) time.Time {
	t, _ := parsePublished(decodeObject(raw).text("published"))
	return t
}

// parsePublished reads the wall-clock components as UTC and adds the hour
// offset to reach the instant.
func parsePublished(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	m := publishedPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	n := make([]int, 8)
	for i := range n {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}

	t := time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], n[6]*int(time.Millisecond), time.UTC)
	return t.Add(time.Duration(n[7]) * time.Hour), true
}

// commentCount accepts the total as a numeric string, which Blogger sends,
// or as a plain JSON number.
func commentCount(entry object) int {
	raw := decodeObject(entry["thr$total"])["$t"]
	if len(raw) == 0 {
		return 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		return n
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	return 0
}

// findLinks scans every link descriptor; a later match replaces an earlier one.
func findLinks(entry object) (permalink, comments string) {
	var links []json.RawMessage
	if err := json.Unmarshal(entry["link"], &links); err != nil {
		return "", ""
	}

	for _, raw := range links {
		link := decodeObject(raw)
		if link.str("type") != typeHTML {
			continue
		}
		switch link.str("rel") {
		case relAlternate:
			permalink = link.str("href")
		case relReplies:
			comments = link.str("href")
		}
	}
	return permalink, comments
}

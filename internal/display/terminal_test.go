package display

import (
	"strings"
	"testing"

	"github.com/gauthierbraillon/blogfeed/pkg/blogspot"
)

func TestAC300_TerminalFeed_ShowsPostTitle(t *testing.T) {
	post := blogspot.Post{Title: "Panoramas from Cape Town"}

	output := NewTerminalFormatter().FormatPost(post)

	if !strings.Contains(output, "Panoramas from Cape Town") {
		t.Error("user should see post title in terminal output")
	}
}

func TestAC300_TerminalFeed_MarksUntitledPosts(t *testing.T) {
	output := NewTerminalFormatter().FormatPost(blogspot.Post{})

	if !strings.Contains(output, "(untitled)") {
		t.Errorf("user should see a placeholder for untitled posts, got:\n%s", output)
	}
}

func TestAC301_TerminalFeed_ShowsDateAndComments(t *testing.T) {
	testCases := []struct {
		name     string
		post     blogspot.Post
		contains string
	}{
		{"formatted date", blogspot.Post{Title: "x", FormattedDate: "March 15, 2020"}, "March 15, 2020"},
		{"one comment", blogspot.Post{Title: "x", CommentCount: 1}, "1 comment"},
		{"many comments", blogspot.Post{Title: "x", CommentCount: 7}, "7 comments"},
		{"both", blogspot.Post{Title: "x", FormattedDate: "Mar 15, 2020", CommentCount: 2}, "Mar 15, 2020 • 2 comments"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := NewTerminalFormatter().FormatPost(tc.post)
			if !strings.Contains(output, tc.contains) {
				t.Errorf("user should see %q, got:\n%s", tc.contains, output)
			}
		})
	}
}

func TestAC301_TerminalFeed_HidesZeroComments(t *testing.T) {
	output := NewTerminalFormatter().FormatPost(blogspot.Post{Title: "x"})

	if strings.Contains(output, "comment") {
		t.Errorf("user should not see a comment count of zero, got:\n%s", output)
	}
}

func TestAC302_TerminalFeed_ShowsPermalink(t *testing.T) {
	post := blogspot.Post{
		Title:        "Test Post",
		PermalinkURL: "http://example.blogspot.com/2011/06/post.html",
	}

	output := NewTerminalFormatter().FormatPost(post)

	if !strings.Contains(output, "http://example.blogspot.com/2011/06/post.html") {
		t.Error("user should see the permalink in terminal output")
	}
}

func TestAC303_TerminalFeed_PrefersSummaryExcerpt(t *testing.T) {
	post := blogspot.Post{
		Title:            "Test Post",
		TruncatedSummary: "The short\nsummary",
		TruncatedContent: "The long content",
	}

	output := NewTerminalFormatter().FormatPost(post)

	if !strings.Contains(output, "The short summary") {
		t.Errorf("user should see the summary on one line, got:\n%s", output)
	}
	if strings.Contains(output, "The long content") {
		t.Error("content should only be shown when there is no summary")
	}
}

func TestAC303_TerminalFeed_FallsBackToContentExcerpt(t *testing.T) {
	post := blogspot.Post{Title: "Test Post", TruncatedContent: "The long content"}

	output := NewTerminalFormatter().FormatPost(post)

	if !strings.Contains(output, "The long content") {
		t.Errorf("user should see the content when there is no summary, got:\n%s", output)
	}
}

func TestAC304_TerminalFeed_ShowsMultiplePosts(t *testing.T) {
	posts := []blogspot.Post{
		{Title: "First Post"},
		{Title: "Second Post"},
	}

	output := NewTerminalFormatter().FormatPosts(posts)

	if !strings.Contains(output, "First Post") {
		t.Error("user should see first post in feed")
	}
	if !strings.Contains(output, "Second Post") {
		t.Error("user should see second post in feed")
	}
	if strings.Index(output, "First Post") > strings.Index(output, "Second Post") {
		t.Error("user should see posts in feed order")
	}
}

func TestAC305_TerminalFeed_ShowsEmptyFeedMessage(t *testing.T) {
	output := NewTerminalFormatter().FormatPosts(nil)

	if !strings.Contains(strings.ToLower(output), "no") {
		t.Error("user should see message indicating no content available")
	}
}

package aggregator

import (
	"sync"

	"github.com/gauthierbraillon/blogfeed/pkg/blogspot"
)

// Aggregator collects posts from one or more reads.
type Aggregator struct {
	mu    sync.Mutex
	posts []blogspot.Post
}

// New creates a new Aggregator instance.
func New() *Aggregator {
	return &Aggregator{
		posts: make([]blogspot.Post, 0),
	}
}

// Listener returns a read listener that adds every reported post.
func (a *Aggregator) Listener() blogspot.ReadListener {
	return blogspot.OnPost(func(p blogspot.Post) {
		a.AddPosts(p)
	})
}

// AddPosts appends posts in the given order.
func (a *Aggregator) AddPosts(posts ...blogspot.Post) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.posts = append(a.posts, posts...)
}

// Len returns the number of collected posts.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.posts)
}

// GetFeed returns collected posts in arrival order, filtered by opts.
// The result is never nil.
func (a *Aggregator) GetFeed(opts FeedOptions) []blogspot.Post {
	a.mu.Lock()
	defer a.mu.Unlock()

	feed := make([]blogspot.Post, 0, len(a.posts))
	for _, p := range a.posts {
		if !opts.matches(p.PublishedAt) {
			continue
		}
		feed = append(feed, p)
		if opts.Limit > 0 && len(feed) == opts.Limit {
			break
		}
	}
	return feed
}

package domain

import "time"

// MatchMode controls how multiple tag filters combine
type MatchMode string

const (
	MatchAny MatchMode = "any"
	MatchAll MatchMode = "all"
)

// FeedCursor is the keyset pagination token: sort key and id of the last row
// of the previous page.
type FeedCursor struct {
	Date time.Time `json:"date"`
	ID   uint64    `json:"id"`
}

// FeedQuery describes one feed page request
type FeedQuery struct {
	Viewer   *Actor // nil for anonymous
	TagSlugs []string
	Match    MatchMode
	From     *time.Time // inclusive, day granularity
	To       *time.Time // inclusive at day granularity
	Cursor   *FeedCursor
	Limit    int
}

// FeedPost is one post in the assembled feed, with aggregated engagement
type FeedPost struct {
	ID           uint64     `json:"id"`
	AuthorID     string     `json:"author_id"`
	Title        string     `json:"title"`
	Excerpt      *string    `json:"excerpt,omitempty"`
	Status       Status     `json:"status"`
	Tags         []string   `json:"tags"`
	CommentCount int64      `json:"comment_count"`
	LikeCount    int64      `json:"like_count"`
	Edited       bool       `json:"edited"`
	CreatedAt    time.Time  `json:"created_at"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	SortDate     time.Time  `json:"sort_date"`
}

// FeedPage is one page of the feed plus the cursor for the next one
type FeedPage struct {
	Posts      []*FeedPost `json:"posts"`
	NextCursor *FeedCursor `json:"next_cursor"`
}

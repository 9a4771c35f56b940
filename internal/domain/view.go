package domain

import "time"

// PostView is the effective (displayed) post for one viewer: canonical
// content, possibly overlaid with the viewer's own latest unapproved
// revision. Building a view never mutates the store.
type PostView struct {
	ID              uint64     `json:"id"`
	AuthorID        string     `json:"author_id"`
	Title           string     `json:"title"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	Content         string     `json:"content"`
	Status          Status     `json:"status"`
	PendingTagSlugs []string   `json:"pending_tag_slugs,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`

	// Overlay provenance: set when the displayed content comes from the
	// viewer's own revision rather than canonical.
	RevisionID     *uint64 `json:"revision_id,omitempty"`
	RevisionStatus *Status `json:"revision_status,omitempty"`
	ReviewerNote   *string `json:"reviewer_note,omitempty"`
}

// CommentView is the effective (displayed) comment for one viewer
type CommentView struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	ParentID  *uint64   `json:"parent_id,omitempty"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	RevisionID     *uint64 `json:"revision_id,omitempty"`
	RevisionStatus *Status `json:"revision_status,omitempty"`
	ReviewerNote   *string `json:"reviewer_note,omitempty"`
}

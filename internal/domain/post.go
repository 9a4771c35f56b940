package domain

import "time"

// Post is the canonical row for a post. It is mutated only by
// admin-originated actions: direct edit or revision approval.
type Post struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorID        string     `gorm:"column:author_id;type:varchar(64);index" json:"author_id"`
	Title           string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Excerpt         *string    `gorm:"column:excerpt;type:text" json:"excerpt,omitempty"`
	Content         string     `gorm:"column:content;type:mediumtext" json:"content"`
	Status          Status     `gorm:"column:status;type:enum('pending','published','rejected');default:'pending';index" json:"status"`
	PendingTagSlugs StringList `gorm:"column:pending_tag_slugs;type:json" json:"pending_tag_slugs,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	PublishedAt     *time.Time `gorm:"column:published_at;index" json:"published_at,omitempty"`
}

func (Post) TableName() string { return "posts" }

// SortDate is the feed sort key: published_at when present, created_at
// otherwise. Must match the COALESCE used in feed queries.
func (p *Post) SortDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// Edited reports whether the post was changed meaningfully after its initial
// save. The 60s threshold filters out clock noise around creation.
func (p *Post) Edited() bool {
	return p.UpdatedAt.Sub(p.CreatedAt) > 60*time.Second
}

// PostRevision is a sparse patch proposed against a post. A nil field means
// "unchanged"; a present empty value means "clear".
type PostRevision struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID       uint64     `gorm:"column:post_id;index" json:"post_id"`
	AuthorID     string     `gorm:"column:author_id;type:varchar(64);index" json:"author_id"`
	Title        *string    `gorm:"column:title;type:varchar(255)" json:"title,omitempty"`
	Excerpt      *string    `gorm:"column:excerpt;type:text" json:"excerpt,omitempty"`
	Content      *string    `gorm:"column:content;type:mediumtext" json:"content,omitempty"`
	TagIDs       IDList     `gorm:"column:tag_ids;type:json" json:"tag_ids,omitempty"`
	TagNames     StringList `gorm:"column:tag_names;type:json" json:"tag_names,omitempty"`
	TagsSet      bool       `gorm:"column:tags_set;default:false" json:"tags_set"`
	Status       Status     `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy   *string    `gorm:"column:reviewed_by;type:varchar(64)" json:"reviewed_by,omitempty"`
	ReviewerNote *string    `gorm:"column:reviewer_note;type:text" json:"reviewer_note,omitempty"`
}

func (PostRevision) TableName() string { return "post_revisions" }

// IsEmpty reports whether the revision changes nothing
func (r *PostRevision) IsEmpty() bool {
	return r.Title == nil && r.Excerpt == nil && r.Content == nil && !r.TagsSet
}

// PostLike is one user's like on a post
type PostLike struct {
	PostID    uint64    `gorm:"column:post_id;primaryKey" json:"post_id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }

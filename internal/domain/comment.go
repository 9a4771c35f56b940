package domain

import "time"

// Comment is the canonical row for a comment. Comments attach only to
// published posts; replies reference a parent comment on the same post.
type Comment struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID     uint64     `gorm:"column:post_id;index" json:"post_id"`
	AuthorID   string     `gorm:"column:author_id;type:varchar(64);index" json:"author_id"`
	ParentID   *uint64    `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Body       string     `gorm:"column:body;type:text" json:"body"`
	Status     Status     `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
}

func (Comment) TableName() string { return "comments" }

// CommentRevision is a sparse patch proposed against a comment
type CommentRevision struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CommentID    uint64     `gorm:"column:comment_id;index" json:"comment_id"`
	AuthorID     string     `gorm:"column:author_id;type:varchar(64);index" json:"author_id"`
	Body         *string    `gorm:"column:body;type:text" json:"body,omitempty"`
	Status       Status     `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy   *string    `gorm:"column:reviewed_by;type:varchar(64)" json:"reviewed_by,omitempty"`
	ReviewerNote *string    `gorm:"column:reviewer_note;type:text" json:"reviewer_note,omitempty"`
}

func (CommentRevision) TableName() string { return "comment_revisions" }

// IsEmpty reports whether the revision changes nothing
func (r *CommentRevision) IsEmpty() bool {
	return r.Body == nil
}

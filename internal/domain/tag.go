package domain

import "time"

// Tag is a canonical taxonomy tag. Slug is the identity: globally unique,
// ASCII, at most 64 chars. Name keeps the casing of the first proposer.
type Tag struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Slug       string    `gorm:"column:slug;type:varchar(64);uniqueIndex" json:"slug"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64);index" json:"created_by"`
	ApprovedBy *string   `gorm:"column:approved_by;type:varchar(64)" json:"approved_by,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// TagRequest is an unprivileged contributor's proposal for a new tag.
// At most one pending request may exist per slug.
type TagRequest struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"column:name;type:varchar(100)" json:"name"`
	Slug         string     `gorm:"column:slug;type:varchar(64);index" json:"slug"`
	RequestedBy  string     `gorm:"column:requested_by;type:varchar(64);index" json:"requested_by"`
	Status       Status     `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy   *string    `gorm:"column:reviewed_by;type:varchar(64)" json:"reviewed_by,omitempty"`
	ReviewerNote *string    `gorm:"column:reviewer_note;type:text" json:"reviewer_note,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TagRequest) TableName() string { return "tag_requests" }

// TagRevision proposes a rename/re-slug of an existing tag. Sparse: a nil
// field means unchanged.
type TagRevision struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TagID        uint64     `gorm:"column:tag_id;index" json:"tag_id"`
	Name         *string    `gorm:"column:name;type:varchar(100)" json:"name,omitempty"`
	Slug         *string    `gorm:"column:slug;type:varchar(64)" json:"slug,omitempty"`
	RequestedBy  string     `gorm:"column:requested_by;type:varchar(64);index" json:"requested_by"`
	Status       Status     `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy   *string    `gorm:"column:reviewed_by;type:varchar(64)" json:"reviewed_by,omitempty"`
	ReviewerNote *string    `gorm:"column:reviewer_note;type:text" json:"reviewer_note,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TagRevision) TableName() string { return "tag_revisions" }

// PostTag links a post to a tag
type PostTag struct {
	PostID uint64 `gorm:"column:post_id;primaryKey" json:"post_id"`
	TagID  uint64 `gorm:"column:tag_id;primaryKey" json:"tag_id"`
}

func (PostTag) TableName() string { return "post_tags" }

// TagResolution is the outcome of resolving tag ids and free-text names for
// one entity: ids to link now, and slugs that have no approved tag yet.
type TagResolution struct {
	ResolvedTagIDs  []uint64
	PendingTagSlugs []string
}

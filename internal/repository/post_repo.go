package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

// feed sort key; must stay in sync with domain.Post.SortDate
const sortKeyExpr = "COALESCE(published_at, created_at)"

// PostRepository data access for posts, post revisions, likes and tag links
type PostRepository interface {
	FindByID(id uint64) (*domain.Post, error)
	CreateWithTags(post *domain.Post, tagIDs []uint64) error
	Update(post *domain.Post) error
	UpdateWithTags(post *domain.Post, tagIDs []uint64) error
	DeleteCascade(id uint64) error
	ListPending() ([]*domain.Post, error)
	TagIDs(postID uint64) ([]uint64, error)

	CreateRevision(rev *domain.PostRevision) error
	FindRevisionByID(id uint64) (*domain.PostRevision, error)
	LatestRevisionByAuthor(postID uint64, authorID string) (*domain.PostRevision, error)
	UpdateRevision(rev *domain.PostRevision) error
	ListPendingRevisions() ([]*domain.PostRevision, error)
	ApplyRevision(post *domain.Post, rev *domain.PostRevision, tagIDs []uint64, replaceTags bool) error

	// Reconciliation
	ReconcilePendingSlug(tag *domain.Tag) ([]uint64, error)
	LinkTagsAndRemoveSlugs(postID uint64, tagIDs []uint64, slugs []string) error

	// Feed
	ListFeed(q domain.FeedQuery, tagIDs []uint64) ([]*domain.Post, error)
	TagNamesByPostIDs(ids []uint64) (map[uint64][]string, error)
	LikeCounts(ids []uint64) (map[uint64]int64, error)

	// Likes
	AddLike(postID uint64, userID string) error
	RemoveLike(postID uint64, userID string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	return &post, err
}

// CreateWithTags inserts the post and its tag links in one transaction, so a
// post never exists with half its links.
func (r *postRepository) CreateWithTags(post *domain.Post, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return insertLinks(tx, post.ID, tagIDs)
	})
}

func (r *postRepository) Update(post *domain.Post) error {
	return r.db.Save(post).Error
}

// UpdateWithTags saves the post and fully replaces its tag links
// (delete-all-then-insert).
func (r *postRepository) UpdateWithTags(post *domain.Post, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&domain.PostTag{}).Error; err != nil {
			return err
		}
		return insertLinks(tx, post.ID, tagIDs)
	})
}

// DeleteCascade hard-deletes a post. Dependents go first: revisions, then
// comments and their revisions, then engagement rows, then tag links, then
// the canonical row.
func (r *postRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostRevision{}).Error; err != nil {
			return err
		}
		sub := tx.Model(&domain.Comment{}).Select("id").Where("post_id = ?", id)
		if err := tx.Where("comment_id IN (?)", sub).Delete(&domain.CommentRevision{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, id).Error
	})
}

func (r *postRepository) ListPending() ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.Where("status = ?", domain.StatusPending).Order("created_at ASC").Find(&posts).Error
	return posts, err
}

func (r *postRepository) TagIDs(postID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&domain.PostTag{}).Where("post_id = ?", postID).Pluck("tag_id", &ids).Error
	return ids, err
}

func (r *postRepository) CreateRevision(rev *domain.PostRevision) error {
	return r.db.Create(rev).Error
}

func (r *postRepository) FindRevisionByID(id uint64) (*domain.PostRevision, error) {
	var rev domain.PostRevision
	err := r.db.First(&rev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrRevisionNotFound
	}
	return &rev, err
}

// LatestRevisionByAuthor returns the newest revision a given author filed
// against a post; only this row matters for the display overlay.
func (r *postRepository) LatestRevisionByAuthor(postID uint64, authorID string) (*domain.PostRevision, error) {
	var rev domain.PostRevision
	err := r.db.Where("post_id = ? AND author_id = ?", postID, authorID).
		Order("created_at DESC, id DESC").
		First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rev, err
}

func (r *postRepository) UpdateRevision(rev *domain.PostRevision) error {
	return r.db.Save(rev).Error
}

func (r *postRepository) ListPendingRevisions() ([]*domain.PostRevision, error) {
	var revs []*domain.PostRevision
	err := r.db.Where("status = ?", domain.StatusPending).Order("created_at ASC").Find(&revs).Error
	return revs, err
}

// ApplyRevision persists a revision approval atomically: the patched
// canonical row, the optional tag-link replacement and the reviewed revision
// land in one transaction, so canonical never half-reflects a revision.
func (r *postRepository) ApplyRevision(post *domain.Post, rev *domain.PostRevision, tagIDs []uint64, replaceTags bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if replaceTags {
			if err := tx.Where("post_id = ?", post.ID).Delete(&domain.PostTag{}).Error; err != nil {
				return err
			}
			if err := insertLinks(tx, post.ID, tagIDs); err != nil {
				return err
			}
		}
		return tx.Save(rev).Error
	})
}

// ReconcilePendingSlug links the newly approved tag to every post whose
// pending slug list references it, and removes the slug from each list.
// Removal is computed per post; one post's list never affects another's.
func (r *postRepository) ReconcilePendingSlug(tag *domain.Tag) ([]uint64, error) {
	var affected []uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var posts []*domain.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("JSON_CONTAINS(pending_tag_slugs, JSON_QUOTE(?))", tag.Slug).
			Find(&posts).Error
		if err != nil {
			return err
		}
		for _, post := range posts {
			if err := insertLinks(tx, post.ID, []uint64{tag.ID}); err != nil {
				return err
			}
			remaining := post.PendingTagSlugs.Without(tag.Slug)
			if err := tx.Model(&domain.Post{}).Where("id = ?", post.ID).
				Update("pending_tag_slugs", remaining).Error; err != nil {
				return err
			}
			affected = append(affected, post.ID)
		}
		return nil
	})
	return affected, err
}

// LinkTagsAndRemoveSlugs adds tag links (without touching existing ones) and
// drops the given slugs from the post's pending list, atomically. Used when
// a pending post is approved and some of its pending slugs already resolve.
func (r *postRepository) LinkTagsAndRemoveSlugs(postID uint64, tagIDs []uint64, slugs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := insertLinks(tx, postID, tagIDs); err != nil {
			return err
		}
		if len(slugs) == 0 {
			return nil
		}
		var post domain.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			return err
		}
		remaining := post.PendingTagSlugs
		for _, s := range slugs {
			remaining = remaining.Without(s)
		}
		return tx.Model(&domain.Post{}).Where("id = ?", postID).
			Update("pending_tag_slugs", remaining).Error
	})
}

// ListFeed runs the keyset-paginated feed query. Fetches q.Limit+1 rows so
// the caller can detect a next page without a count query.
func (r *postRepository) ListFeed(q domain.FeedQuery, tagIDs []uint64) ([]*domain.Post, error) {
	db := r.db.Model(&domain.Post{})

	// Visibility: admins see everything, authenticated viewers see published
	// plus their own, anonymous viewers see published only.
	switch {
	case q.Viewer == nil:
		db = db.Where("status = ?", domain.StatusPublished)
	case q.Viewer.IsAdmin():
		// no predicate
	default:
		db = db.Where("status = ? OR author_id = ?", domain.StatusPublished, q.Viewer.ID)
	}

	if len(tagIDs) > 0 {
		sub := r.db.Model(&domain.PostTag{}).Select("post_id").Where("tag_id IN ?", tagIDs)
		if q.Match == domain.MatchAll {
			// a post must carry every requested tag; extra tags are fine
			sub = sub.Group("post_id").Having("COUNT(DISTINCT tag_id) = ?", len(tagIDs))
		}
		db = db.Where("id IN (?)", sub)
	}

	if q.From != nil {
		db = db.Where(sortKeyExpr+" >= ?", *q.From)
	}
	if q.To != nil {
		// inclusive at day granularity regardless of time-of-day
		db = db.Where(sortKeyExpr+" < ?", q.To.AddDate(0, 0, 1))
	}

	if q.Cursor != nil {
		db = db.Where(sortKeyExpr+" < ? OR ("+sortKeyExpr+" = ? AND id < ?)",
			q.Cursor.Date, q.Cursor.Date, q.Cursor.ID)
	}

	var posts []*domain.Post
	err := db.Order(sortKeyExpr + " DESC, id DESC").
		Limit(q.Limit + 1).
		Find(&posts).Error
	return posts, err
}

type tagNameRow struct {
	PostID uint64
	Name   string
}

// TagNamesByPostIDs batch-fetches tag names for a page of posts in one query
func (r *postRepository) TagNamesByPostIDs(ids []uint64) (map[uint64][]string, error) {
	out := make(map[uint64][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []tagNameRow
	err := r.db.Table("post_tags").
		Select("post_tags.post_id AS post_id, tags.name AS name").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("post_tags.post_id IN ?", ids).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = append(out[row.PostID], row.Name)
	}
	return out, nil
}

type countRow struct {
	PostID uint64
	Cnt    int64
}

// LikeCounts batch-fetches like counts for a page of posts in one query
func (r *postRepository) LikeCounts(ids []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []countRow
	err := r.db.Model(&domain.PostLike{}).
		Select("post_id AS post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.Cnt
	}
	return out, nil
}

// AddLike is idempotent: liking twice is a no-op
func (r *postRepository) AddLike(postID uint64, userID string) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.PostLike{PostID: postID, UserID: userID}).Error
}

func (r *postRepository) RemoveLike(postID uint64, userID string) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&domain.PostLike{}).Error
}

// insertLinks inserts post-tag links, tolerating ones that already exist
func insertLinks(tx *gorm.DB, postID uint64, tagIDs []uint64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]domain.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, domain.PostTag{PostID: postID, TagID: tagID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

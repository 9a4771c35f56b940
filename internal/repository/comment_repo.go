package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

// CommentRepository data access for comments and comment revisions
type CommentRepository interface {
	FindByID(id uint64) (*domain.Comment, error)
	Create(comment *domain.Comment) error
	Update(comment *domain.Comment) error
	DeleteCascade(id uint64) error
	ListPending() ([]*domain.Comment, error)
	ListApprovedByPost(postID uint64) ([]*domain.Comment, error)
	CountApprovedByPostIDs(ids []uint64) (map[uint64]int64, error)

	CreateRevision(rev *domain.CommentRevision) error
	FindRevisionByID(id uint64) (*domain.CommentRevision, error)
	LatestRevisionByAuthor(commentID uint64, authorID string) (*domain.CommentRevision, error)
	UpdateRevision(rev *domain.CommentRevision) error
	ListPendingRevisions() ([]*domain.CommentRevision, error)
	ApplyRevision(comment *domain.Comment, rev *domain.CommentRevision) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindByID(id uint64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrCommentNotFound
	}
	return &comment, err
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Update(comment *domain.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteCascade removes the comment and its revisions; replies are kept but
// orphaned from the thread (their parent_id is cleared).
func (r *commentRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&domain.CommentRevision{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Comment{}).Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Comment{}, id).Error
	})
}

func (r *commentRepository) ListPending() ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Where("status = ?", domain.StatusPending).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListApprovedByPost(postID uint64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Where("post_id = ? AND status = ?", postID, domain.StatusApproved).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}

type commentCountRow struct {
	PostID uint64
	Cnt    int64
}

// CountApprovedByPostIDs batch-counts approved comments for a page of posts
func (r *commentRepository) CountApprovedByPostIDs(ids []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []commentCountRow
	err := r.db.Model(&domain.Comment{}).
		Select("post_id AS post_id, COUNT(*) AS cnt").
		Where("post_id IN ? AND status = ?", ids, domain.StatusApproved).
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

func (r *commentRepository) CreateRevision(rev *domain.CommentRevision) error {
	return r.db.Create(rev).Error
}

func (r *commentRepository) FindRevisionByID(id uint64) (*domain.CommentRevision, error) {
	var rev domain.CommentRevision
	err := r.db.First(&rev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrRevisionNotFound
	}
	return &rev, err
}

// LatestRevisionByAuthor returns the newest revision a given author filed
// against a comment; only this row matters for the display overlay.
func (r *commentRepository) LatestRevisionByAuthor(commentID uint64, authorID string) (*domain.CommentRevision, error) {
	var rev domain.CommentRevision
	err := r.db.Where("comment_id = ? AND author_id = ?", commentID, authorID).
		Order("created_at DESC, id DESC").
		First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rev, err
}

func (r *commentRepository) UpdateRevision(rev *domain.CommentRevision) error {
	return r.db.Save(rev).Error
}

// ApplyRevision persists a revision approval atomically: patched canonical
// and reviewed revision land in one transaction.
func (r *commentRepository) ApplyRevision(comment *domain.Comment, rev *domain.CommentRevision) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(comment).Error; err != nil {
			return err
		}
		return tx.Save(rev).Error
	})
}

func (r *commentRepository) ListPendingRevisions() ([]*domain.CommentRevision, error) {
	var revs []*domain.CommentRevision
	err := r.db.Where("status = ?", domain.StatusPending).Order("created_at ASC").Find(&revs).Error
	return revs, err
}

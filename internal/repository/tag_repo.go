package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

// TagRepository data access for tags, tag requests and tag revisions
type TagRepository interface {
	FindByID(id uint64) (*domain.Tag, error)
	FindByIDs(ids []uint64) ([]*domain.Tag, error)
	FindBySlug(slug string) (*domain.Tag, error)
	FindBySlugs(slugs []string) ([]*domain.Tag, error)
	FindBySlugsOrNames(slugs, names []string) ([]*domain.Tag, error)
	List() ([]*domain.Tag, error)
	Create(tag *domain.Tag) error
	Update(tag *domain.Tag) error
	DeleteCascade(id uint64) error

	FindRequestByID(id uint64) (*domain.TagRequest, error)
	CreateRequest(req *domain.TagRequest) error
	UpdateRequest(req *domain.TagRequest) error
	ListPendingRequests() ([]*domain.TagRequest, error)
	ClosePendingRequestsBySlug(slug, reviewerID string) error

	CreateRevision(rev *domain.TagRevision) error
	FindRevisionByID(id uint64) (*domain.TagRevision, error)
	UpdateRevision(rev *domain.TagRevision) error
	ListPendingRevisions() ([]*domain.TagRevision, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindByID(id uint64) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrTagNotFound
	}
	return &tag, err
}

func (r *tagRepository) FindByIDs(ids []uint64) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []*domain.Tag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindBySlug(slug string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.Where("slug = ?", slug).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrTagNotFound
	}
	return &tag, err
}

func (r *tagRepository) FindBySlugs(slugs []string) ([]*domain.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var tags []*domain.Tag
	err := r.db.Where("slug IN ?", slugs).Find(&tags).Error
	return tags, err
}

// FindBySlugsOrNames matches in one pass: a name match without a slug match
// still counts as "already exists" so near-duplicate tags are not created.
func (r *tagRepository) FindBySlugsOrNames(slugs, names []string) ([]*domain.Tag, error) {
	if len(slugs) == 0 && len(names) == 0 {
		return nil, nil
	}
	var tags []*domain.Tag
	q := r.db
	switch {
	case len(slugs) > 0 && len(names) > 0:
		q = q.Where("slug IN ? OR LOWER(name) IN ?", slugs, names)
	case len(slugs) > 0:
		q = q.Where("slug IN ?", slugs)
	default:
		q = q.Where("LOWER(name) IN ?", names)
	}
	err := q.Find(&tags).Error
	return tags, err
}

func (r *tagRepository) List() ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Create(tag *domain.Tag) error {
	err := r.db.Create(tag).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrSlugConflict
	}
	return err
}

func (r *tagRepository) Update(tag *domain.Tag) error {
	err := r.db.Save(tag).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrSlugConflict
	}
	return err
}

// DeleteCascade removes the tag, its revisions and its post links. Order
// matters: dependents first.
func (r *tagRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&domain.TagRevision{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&domain.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Tag{}, id).Error
	})
}

func (r *tagRepository) FindRequestByID(id uint64) (*domain.TagRequest, error) {
	var req domain.TagRequest
	err := r.db.First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	return &req, err
}

// CreateRequest inserts a pending tag request unless one already exists for
// the same slug. The existing row is locked so two concurrent proposers of
// the same name cannot both pass the check.
func (r *tagRepository) CreateRequest(req *domain.TagRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&domain.TagRequest{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slug = ? AND status = ?", req.Slug, domain.StatusPending).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return common.ErrDuplicateTagRequest
		}
		return tx.Create(req).Error
	})
}

func (r *tagRepository) UpdateRequest(req *domain.TagRequest) error {
	return r.db.Save(req).Error
}

func (r *tagRepository) ListPendingRequests() ([]*domain.TagRequest, error) {
	var reqs []*domain.TagRequest
	err := r.db.Where("status = ?", domain.StatusPending).Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

// ClosePendingRequestsBySlug auto-approves any pending request for a slug
// that a privileged caller just created a tag for.
func (r *tagRepository) ClosePendingRequestsBySlug(slug, reviewerID string) error {
	now := time.Now()
	return r.db.Model(&domain.TagRequest{}).
		Where("slug = ? AND status = ?", slug, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":      domain.StatusApproved,
			"reviewed_at": now,
			"reviewed_by": reviewerID,
		}).Error
}

func (r *tagRepository) CreateRevision(rev *domain.TagRevision) error {
	return r.db.Create(rev).Error
}

func (r *tagRepository) FindRevisionByID(id uint64) (*domain.TagRevision, error) {
	var rev domain.TagRevision
	err := r.db.First(&rev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrRevisionNotFound
	}
	return &rev, err
}

func (r *tagRepository) UpdateRevision(rev *domain.TagRevision) error {
	return r.db.Save(rev).Error
}

func (r *tagRepository) ListPendingRevisions() ([]*domain.TagRevision, error) {
	var revs []*domain.TagRevision
	err := r.db.Where("status = ?", domain.StatusPending).Order("created_at ASC").Find(&revs).Error
	return revs, err
}

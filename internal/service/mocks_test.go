package service

import (
	"github.com/stretchr/testify/mock"

	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

// --- Mock TagRepository ---

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) FindByID(id uint64) (*domain.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindByIDs(ids []uint64) ([]*domain.Tag, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindBySlug(slug string) (*domain.Tag, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindBySlugs(slugs []string) ([]*domain.Tag, error) {
	args := m.Called(slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindBySlugsOrNames(slugs, names []string) ([]*domain.Tag, error) {
	args := m.Called(slugs, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) List() ([]*domain.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) Create(tag *domain.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *mockTagRepo) Update(tag *domain.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *mockTagRepo) DeleteCascade(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockTagRepo) FindRequestByID(id uint64) (*domain.TagRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagRequest), args.Error(1)
}

func (m *mockTagRepo) CreateRequest(req *domain.TagRequest) error {
	return m.Called(req).Error(0)
}

func (m *mockTagRepo) UpdateRequest(req *domain.TagRequest) error {
	return m.Called(req).Error(0)
}

func (m *mockTagRepo) ListPendingRequests() ([]*domain.TagRequest, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TagRequest), args.Error(1)
}

func (m *mockTagRepo) ClosePendingRequestsBySlug(slug, reviewerID string) error {
	return m.Called(slug, reviewerID).Error(0)
}

func (m *mockTagRepo) CreateRevision(rev *domain.TagRevision) error {
	return m.Called(rev).Error(0)
}

func (m *mockTagRepo) FindRevisionByID(id uint64) (*domain.TagRevision, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagRevision), args.Error(1)
}

func (m *mockTagRepo) UpdateRevision(rev *domain.TagRevision) error {
	return m.Called(rev).Error(0)
}

func (m *mockTagRepo) ListPendingRevisions() ([]*domain.TagRevision, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TagRevision), args.Error(1)
}

// --- Mock PostRepository ---

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) FindByID(id uint64) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) CreateWithTags(post *domain.Post, tagIDs []uint64) error {
	return m.Called(post, tagIDs).Error(0)
}

func (m *mockPostRepo) Update(post *domain.Post) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) UpdateWithTags(post *domain.Post, tagIDs []uint64) error {
	return m.Called(post, tagIDs).Error(0)
}

func (m *mockPostRepo) DeleteCascade(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockPostRepo) ListPending() ([]*domain.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}

func (m *mockPostRepo) TagIDs(postID uint64) ([]uint64, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *mockPostRepo) CreateRevision(rev *domain.PostRevision) error {
	return m.Called(rev).Error(0)
}

func (m *mockPostRepo) FindRevisionByID(id uint64) (*domain.PostRevision, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostRevision), args.Error(1)
}

func (m *mockPostRepo) LatestRevisionByAuthor(postID uint64, authorID string) (*domain.PostRevision, error) {
	args := m.Called(postID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostRevision), args.Error(1)
}

func (m *mockPostRepo) UpdateRevision(rev *domain.PostRevision) error {
	return m.Called(rev).Error(0)
}

func (m *mockPostRepo) ListPendingRevisions() ([]*domain.PostRevision, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PostRevision), args.Error(1)
}

func (m *mockPostRepo) ApplyRevision(post *domain.Post, rev *domain.PostRevision, tagIDs []uint64, replaceTags bool) error {
	return m.Called(post, rev, tagIDs, replaceTags).Error(0)
}

func (m *mockPostRepo) ReconcilePendingSlug(tag *domain.Tag) ([]uint64, error) {
	args := m.Called(tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *mockPostRepo) LinkTagsAndRemoveSlugs(postID uint64, tagIDs []uint64, slugs []string) error {
	return m.Called(postID, tagIDs, slugs).Error(0)
}

func (m *mockPostRepo) ListFeed(q domain.FeedQuery, tagIDs []uint64) ([]*domain.Post, error) {
	args := m.Called(q, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}

func (m *mockPostRepo) TagNamesByPostIDs(ids []uint64) (map[uint64][]string, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64][]string), args.Error(1)
}

func (m *mockPostRepo) LikeCounts(ids []uint64) (map[uint64]int64, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]int64), args.Error(1)
}

func (m *mockPostRepo) AddLike(postID uint64, userID string) error {
	return m.Called(postID, userID).Error(0)
}

func (m *mockPostRepo) RemoveLike(postID uint64, userID string) error {
	return m.Called(postID, userID).Error(0)
}

// --- Mock CommentRepository ---

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) FindByID(id uint64) (*domain.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) Create(comment *domain.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentRepo) Update(comment *domain.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentRepo) DeleteCascade(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockCommentRepo) ListPending() ([]*domain.Comment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) ListApprovedByPost(postID uint64) ([]*domain.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) CountApprovedByPostIDs(ids []uint64) (map[uint64]int64, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]int64), args.Error(1)
}

func (m *mockCommentRepo) CreateRevision(rev *domain.CommentRevision) error {
	return m.Called(rev).Error(0)
}

func (m *mockCommentRepo) FindRevisionByID(id uint64) (*domain.CommentRevision, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommentRevision), args.Error(1)
}

func (m *mockCommentRepo) LatestRevisionByAuthor(commentID uint64, authorID string) (*domain.CommentRevision, error) {
	args := m.Called(commentID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommentRevision), args.Error(1)
}

func (m *mockCommentRepo) UpdateRevision(rev *domain.CommentRevision) error {
	return m.Called(rev).Error(0)
}

func (m *mockCommentRepo) ListPendingRevisions() ([]*domain.CommentRevision, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CommentRevision), args.Error(1)
}

func (m *mockCommentRepo) ApplyRevision(comment *domain.Comment, rev *domain.CommentRevision) error {
	return m.Called(comment, rev).Error(0)
}

// --- Mock TagService ---

type mockTagService struct {
	mock.Mock
}

func (m *mockTagService) Resolve(actor *domain.Actor, tagIDs []uint64, tagNames []string) (*domain.TagResolution, error) {
	args := m.Called(actor, tagIDs, tagNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagResolution), args.Error(1)
}

func (m *mockTagService) ResolveApprovedOnly(tagIDs []uint64, tagNames []string) (*domain.TagResolution, error) {
	args := m.Called(tagIDs, tagNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagResolution), args.Error(1)
}

func (m *mockTagService) OnTagApproved(tag *domain.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *mockTagService) RequestNewTag(actor *domain.Actor, req *domain.NewTagRequest) (*domain.Tag, *domain.TagRequest, error) {
	args := m.Called(actor, req)
	var tag *domain.Tag
	var request *domain.TagRequest
	if args.Get(0) != nil {
		tag = args.Get(0).(*domain.Tag)
	}
	if args.Get(1) != nil {
		request = args.Get(1).(*domain.TagRequest)
	}
	return tag, request, args.Error(2)
}

func (m *mockTagService) RequestEdit(actor *domain.Actor, tagID uint64, patch *domain.TagPatch) (*domain.TagRevision, error) {
	args := m.Called(actor, tagID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagRevision), args.Error(1)
}

func (m *mockTagService) ApproveRequest(actor *domain.Actor, requestID uint64) (*domain.Tag, error) {
	args := m.Called(actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagService) RejectRequest(actor *domain.Actor, requestID uint64, note *string) (*domain.TagRequest, error) {
	args := m.Called(actor, requestID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagRequest), args.Error(1)
}

func (m *mockTagService) ApproveRevision(actor *domain.Actor, revisionID uint64) (*domain.Tag, error) {
	args := m.Called(actor, revisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagService) RejectRevision(actor *domain.Actor, revisionID uint64, note *string) (*domain.TagRevision, error) {
	args := m.Called(actor, revisionID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagRevision), args.Error(1)
}

func (m *mockTagService) Delete(actor *domain.Actor, tagID uint64) error {
	return m.Called(actor, tagID).Error(0)
}

func (m *mockTagService) List() ([]*domain.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagService) ListPendingRequests(actor *domain.Actor) ([]*domain.TagRequest, error) {
	args := m.Called(actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TagRequest), args.Error(1)
}

func (m *mockTagService) ListPendingRevisions(actor *domain.Actor) ([]*domain.TagRevision, error) {
	args := m.Called(actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TagRevision), args.Error(1)
}

// --- Mock SearchIndexer ---

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) UpsertPost(post *domain.Post) {
	m.Called(post)
}

func (m *mockIndexer) RemovePost(postID uint64) {
	m.Called(postID)
}

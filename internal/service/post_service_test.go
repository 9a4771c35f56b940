package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

func newPostService() (*mockPostRepo, *mockTagRepo, *mockTagService, *mockIndexer, PostService) {
	postRepo := new(mockPostRepo)
	tagRepo := new(mockTagRepo)
	tagSvc := new(mockTagService)
	indexer := new(mockIndexer)
	svc := NewPostService(postRepo, tagRepo, tagSvc, indexer)
	return postRepo, tagRepo, tagSvc, indexer, svc
}

func TestSubmitPost_UserStartsPending(t *testing.T) {
	postRepo, _, tagSvc, _, svc := newPostService()

	tagSvc.On("Resolve", author, []uint64(nil), []string{"golang"}).
		Return(&domain.TagResolution{ResolvedTagIDs: []uint64{1}}, nil)
	postRepo.On("CreateWithTags", mock.AnythingOfType("*domain.Post"), []uint64{1}).Return(nil)

	post, err := svc.Submit(author, &domain.SubmitPostRequest{
		Title:    "Hello",
		Content:  "World",
		TagNames: []string{"golang"},
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "user1", post.AuthorID)
	postRepo.AssertExpectations(t)
	tagSvc.AssertExpectations(t)
}

func TestSubmitPost_AdminPublishesImmediately(t *testing.T) {
	postRepo, _, tagSvc, indexer, svc := newPostService()

	tagSvc.On("Resolve", admin, []uint64(nil), []string(nil)).
		Return(&domain.TagResolution{}, nil)
	postRepo.On("CreateWithTags", mock.AnythingOfType("*domain.Post"), []uint64(nil)).Return(nil)
	indexer.On("UpsertPost", mock.AnythingOfType("*domain.Post")).Return()

	post, err := svc.Submit(admin, &domain.SubmitPostRequest{Title: "Hello", Content: "World"})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, post.Status)
	assert.NotNil(t, post.PublishedAt)
	indexer.AssertExpectations(t)
}

func TestSubmitPost_PendingSlugsStored(t *testing.T) {
	postRepo, _, tagSvc, _, svc := newPostService()

	tagSvc.On("Resolve", author, []uint64(nil), []string{"newtag"}).
		Return(&domain.TagResolution{PendingTagSlugs: []string{"newtag"}}, nil)
	postRepo.On("CreateWithTags", mock.AnythingOfType("*domain.Post"), []uint64(nil)).Return(nil)

	post, err := svc.Submit(author, &domain.SubmitPostRequest{
		Title:    "Hello",
		Content:  "World",
		TagNames: []string{"newtag"},
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StringList{"newtag"}, post.PendingTagSlugs)
}

func TestSubmitPost_ValidationFails(t *testing.T) {
	_, _, _, _, svc := newPostService()

	_, err := svc.Submit(author, &domain.SubmitPostRequest{Title: "", Content: "x"})

	assert.Error(t, err)
}

func TestSubmitPost_TagFailureAbortsBeforeCreate(t *testing.T) {
	postRepo, _, tagSvc, _, svc := newPostService()

	tagSvc.On("Resolve", author, []uint64{99}, []string(nil)).
		Return(nil, common.ErrUnknownTagID)

	_, err := svc.Submit(author, &domain.SubmitPostRequest{
		Title:   "Hello",
		Content: "World",
		TagIDs:  []uint64{99},
	})

	assert.ErrorIs(t, err, common.ErrUnknownTagID)
	postRepo.AssertNotCalled(t, "CreateWithTags", mock.Anything, mock.Anything)
}

func TestRequestEdit_AuthorGetsRevision(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	post := &domain.Post{ID: 1, AuthorID: "user1", Title: "Old", Status: domain.StatusPublished}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	postRepo.On("CreateRevision", mock.AnythingOfType("*domain.PostRevision")).Return(nil)

	patch := &domain.PostPatch{Title: domain.Field[string]{Value: "New", Set: true}}
	rev, err := svc.RequestEdit(author, 1, patch)

	assert.NoError(t, err)
	assert.Equal(t, "New", *rev.Title)
	assert.Nil(t, rev.Content)
	assert.Equal(t, domain.StatusPending, rev.Status)
	// Canonical stays untouched
	assert.Equal(t, "Old", post.Title)
	postRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestRequestEdit_StrangerForbidden(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	post := &domain.Post{ID: 1, AuthorID: "someone-else", Status: domain.StatusPublished}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)

	patch := &domain.PostPatch{Title: domain.Field[string]{Value: "New", Set: true}}
	_, err := svc.RequestEdit(author, 1, patch)

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestRequestEdit_EmptyPatch(t *testing.T) {
	_, _, _, _, svc := newPostService()

	_, err := svc.RequestEdit(author, 1, &domain.PostPatch{})

	assert.ErrorIs(t, err, common.ErrEmptyPatch)
}

func TestRequestEdit_AdminAppliesDirectly(t *testing.T) {
	postRepo, _, _, indexer, svc := newPostService()

	post := &domain.Post{ID: 1, AuthorID: "user1", Title: "Old", Status: domain.StatusPublished}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	postRepo.On("Update", post).Return(nil)
	indexer.On("UpsertPost", post).Return()

	patch := &domain.PostPatch{Title: domain.Field[string]{Value: "New", Set: true}}
	rev, err := svc.RequestEdit(admin, 1, patch)

	assert.NoError(t, err)
	assert.Nil(t, rev)
	assert.Equal(t, "New", post.Title)
	postRepo.AssertExpectations(t)
}

func TestRequestEdit_AdminTagsLastWriterWins(t *testing.T) {
	postRepo, _, tagSvc, indexer, svc := newPostService()

	post := &domain.Post{
		ID:              1,
		AuthorID:        "user1",
		Status:          domain.StatusPublished,
		PendingTagSlugs: domain.StringList{"stale-slug"},
	}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	tagSvc.On("Resolve", admin, []uint64(nil), []string{"fresh"}).
		Return(&domain.TagResolution{ResolvedTagIDs: []uint64{2}, PendingTagSlugs: []string{"fresh2"}}, nil)
	postRepo.On("UpdateWithTags", post, []uint64{2}).Return(nil)
	indexer.On("UpsertPost", post).Return()

	patch := &domain.PostPatch{TagNames: domain.Field[[]string]{Value: []string{"fresh"}, Set: true}}
	_, err := svc.RequestEdit(admin, 1, patch)

	assert.NoError(t, err)
	// Pending slugs are recomputed from the patch, not merged
	assert.Equal(t, domain.StringList{"fresh2"}, post.PendingTagSlugs)
}

func TestGetForViewer_DraftHiddenFromStrangers(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	post := &domain.Post{ID: 1, AuthorID: "someone-else", Status: domain.StatusPending}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)

	_, err := svc.GetForViewer(author, 1)
	assert.ErrorIs(t, err, common.ErrPostNotFound)

	_, err = svc.GetForViewer(nil, 1)
	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestGetForViewer_AuthorSeesOverlay(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	post := &domain.Post{ID: 1, AuthorID: "user1", Title: "Canonical", Status: domain.StatusPublished}
	rev := &domain.PostRevision{ID: 8, PostID: 1, AuthorID: "user1", Title: strPtr("Mine"), Status: domain.StatusPending}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	postRepo.On("LatestRevisionByAuthor", uint64(1), "user1").Return(rev, nil)

	view, err := svc.GetForViewer(author, 1)

	assert.NoError(t, err)
	assert.Equal(t, "Mine", view.Title)
	assert.Equal(t, uint64(8), *view.RevisionID)
}

func TestGetForViewer_OtherReaderSeesCanonical(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	post := &domain.Post{ID: 1, AuthorID: "someone-else", Title: "Canonical", Status: domain.StatusPublished}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)

	view, err := svc.GetForViewer(author, 1)

	assert.NoError(t, err)
	assert.Equal(t, "Canonical", view.Title)
	// No revision lookup for non-authors
	postRepo.AssertNotCalled(t, "LatestRevisionByAuthor", mock.Anything, mock.Anything)
}

func TestApproveNew_PublishesAndLinksResolvedSlugs(t *testing.T) {
	postRepo, tagRepo, _, indexer, svc := newPostService()

	post := &domain.Post{
		ID:              1,
		Status:          domain.StatusPending,
		PendingTagSlugs: domain.StringList{"rustlang", "still-waiting"},
	}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	postRepo.On("Update", post).Return(nil)
	// "rustlang" got approved while the post sat in the queue
	tagRepo.On("FindBySlugs", []string{"rustlang", "still-waiting"}).
		Return([]*domain.Tag{{ID: 5, Slug: "rustlang"}}, nil)
	postRepo.On("LinkTagsAndRemoveSlugs", uint64(1), []uint64{5}, []string{"rustlang"}).Return(nil)
	indexer.On("UpsertPost", post).Return()

	out, err := svc.ApproveNew(admin, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, out.Status)
	assert.NotNil(t, out.PublishedAt)
	assert.Equal(t, domain.StringList{"still-waiting"}, out.PendingTagSlugs)
	postRepo.AssertExpectations(t)
}

func TestApproveNew_AlreadyReviewed(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	post := &domain.Post{ID: 1, Status: domain.StatusRejected}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)

	_, err := svc.ApproveNew(admin, 1)

	assert.ErrorIs(t, err, common.ErrAlreadyReviewed)
}

func TestRejectNew_RemovesFromIndex(t *testing.T) {
	postRepo, _, _, indexer, svc := newPostService()

	post := &domain.Post{ID: 1, Status: domain.StatusPending}
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	postRepo.On("Update", post).Return(nil)
	indexer.On("RemovePost", uint64(1)).Return()

	out, err := svc.RejectNew(admin, 1, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, out.Status)
	indexer.AssertExpectations(t)
}

func TestApproveEdit_LandsSparseFields(t *testing.T) {
	postRepo, _, tagSvc, indexer, svc := newPostService()

	post := &domain.Post{ID: 1, Title: "Old", Content: "old body", Status: domain.StatusPublished}
	rev := &domain.PostRevision{ID: 9, PostID: 1, Title: strPtr("New"), Status: domain.StatusPending}
	postRepo.On("FindRevisionByID", uint64(9)).Return(rev, nil)
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	postRepo.On("ApplyRevision", post, rev, []uint64(nil), false).Return(nil)
	indexer.On("UpsertPost", post).Return()

	out, err := svc.ApproveEdit(admin, 9)

	assert.NoError(t, err)
	assert.Equal(t, "New", out.Title)
	assert.Equal(t, "old body", out.Content)
	assert.Equal(t, domain.StatusApproved, rev.Status)
	assert.Equal(t, "admin1", *rev.ReviewedBy)
	tagSvc.AssertNotCalled(t, "ResolveApprovedOnly", mock.Anything, mock.Anything)
}

func TestApproveEdit_TagsResolveApprovedOnly(t *testing.T) {
	postRepo, _, tagSvc, indexer, svc := newPostService()

	post := &domain.Post{ID: 1, Status: domain.StatusPublished}
	rev := &domain.PostRevision{
		ID:       9,
		PostID:   1,
		TagsSet:  true,
		TagNames: domain.StringList{"known", "unknown"},
		Status:   domain.StatusPending,
	}
	postRepo.On("FindRevisionByID", uint64(9)).Return(rev, nil)
	postRepo.On("FindByID", uint64(1)).Return(post, nil)
	tagSvc.On("ResolveApprovedOnly", []uint64(nil), []string{"known", "unknown"}).
		Return(&domain.TagResolution{ResolvedTagIDs: []uint64{3}, PendingTagSlugs: []string{"unknown"}}, nil)
	postRepo.On("ApplyRevision", post, rev, []uint64{3}, true).Return(nil)
	indexer.On("UpsertPost", post).Return()

	out, err := svc.ApproveEdit(admin, 9)

	assert.NoError(t, err)
	assert.Equal(t, domain.StringList{"unknown"}, out.PendingTagSlugs)
	tagSvc.AssertExpectations(t)
}

func TestRejectEdit_KeepsCanonical(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	rev := &domain.PostRevision{ID: 9, PostID: 1, Title: strPtr("Nope"), Status: domain.StatusPending}
	postRepo.On("FindRevisionByID", uint64(9)).Return(rev, nil)
	postRepo.On("UpdateRevision", rev).Return(nil)

	note := "off topic"
	out, err := svc.RejectEdit(admin, 9, &note)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, out.Status)
	assert.Equal(t, "off topic", *out.ReviewerNote)
	postRepo.AssertNotCalled(t, "FindByID", mock.Anything)
	postRepo.AssertNotCalled(t, "ApplyRevision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost_CascadesAndDeindexes(t *testing.T) {
	postRepo, _, _, indexer, svc := newPostService()

	postRepo.On("FindByID", uint64(1)).Return(&domain.Post{ID: 1}, nil)
	postRepo.On("DeleteCascade", uint64(1)).Return(nil)
	indexer.On("RemovePost", uint64(1)).Return()

	err := svc.Delete(admin, 1)

	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
	indexer.AssertExpectations(t)
}

func TestLike_RequiresPublishedPost(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	postRepo.On("FindByID", uint64(1)).Return(&domain.Post{ID: 1, Status: domain.StatusPending}, nil)

	err := svc.Like(author, 1)

	assert.ErrorIs(t, err, common.ErrPostNotPublished)
}

func TestLike_Success(t *testing.T) {
	postRepo, _, _, _, svc := newPostService()

	now := time.Now()
	postRepo.On("FindByID", uint64(1)).
		Return(&domain.Post{ID: 1, Status: domain.StatusPublished, PublishedAt: &now}, nil)
	postRepo.On("AddLike", uint64(1), "user1").Return(nil)

	err := svc.Like(author, 1)

	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
}

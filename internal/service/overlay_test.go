package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestEffectivePost_NoRevision(t *testing.T) {
	post := &domain.Post{ID: 1, Title: "Canonical", Content: "body", Status: domain.StatusPublished}

	view := EffectivePost(post, nil)

	assert.Equal(t, "Canonical", view.Title)
	assert.Equal(t, domain.StatusPublished, view.Status)
	assert.Nil(t, view.RevisionID)
}

func TestEffectivePost_PendingOverlay(t *testing.T) {
	post := &domain.Post{
		ID:      1,
		Title:   "Canonical",
		Excerpt: strPtr("old excerpt"),
		Content: "old body",
		Status:  domain.StatusPublished,
	}
	rev := &domain.PostRevision{
		ID:     7,
		PostID: 1,
		Title:  strPtr("Edited"),
		Status: domain.StatusPending,
	}

	view := EffectivePost(post, rev)

	// Present field overlays, absent fields stay canonical
	assert.Equal(t, "Edited", view.Title)
	assert.Equal(t, "old body", view.Content)
	assert.Equal(t, "old excerpt", *view.Excerpt)

	// Displayed status reflects the revision, with provenance attached
	assert.Equal(t, domain.StatusPending, *view.RevisionStatus)
	assert.Equal(t, uint64(7), *view.RevisionID)
}

func TestEffectivePost_PresentEmptyClears(t *testing.T) {
	post := &domain.Post{ID: 1, Excerpt: strPtr("something"), Status: domain.StatusPublished}
	rev := &domain.PostRevision{ID: 2, Excerpt: strPtr(""), Status: domain.StatusPending}

	view := EffectivePost(post, rev)

	assert.Nil(t, view.Excerpt)
}

func TestEffectivePost_RejectedOverlayCarriesNote(t *testing.T) {
	post := &domain.Post{ID: 1, Title: "Canonical", Status: domain.StatusPublished}
	rev := &domain.PostRevision{
		ID:           3,
		Title:        strPtr("Rejected edit"),
		Status:       domain.StatusRejected,
		ReviewerNote: strPtr("too spammy"),
	}

	view := EffectivePost(post, rev)

	assert.Equal(t, "Rejected edit", view.Title)
	assert.Equal(t, domain.StatusRejected, *view.RevisionStatus)
	assert.Equal(t, "too spammy", *view.ReviewerNote)
}

func TestEffectivePost_ApprovedRevisionIsNotOverlaid(t *testing.T) {
	// An approved revision already landed on canonical; overlaying it again
	// would double-apply.
	post := &domain.Post{ID: 1, Title: "Already landed", Status: domain.StatusPublished}
	rev := &domain.PostRevision{ID: 4, Title: strPtr("stale"), Status: domain.StatusApproved}

	view := EffectivePost(post, rev)

	assert.Equal(t, "Already landed", view.Title)
	assert.Nil(t, view.RevisionID)
}

func TestEffectiveComment_Overlay(t *testing.T) {
	comment := &domain.Comment{ID: 10, PostID: 1, Body: "original", Status: domain.StatusApproved}
	rev := &domain.CommentRevision{ID: 5, Body: strPtr("edited"), Status: domain.StatusPending}

	view := EffectiveComment(comment, rev)

	assert.Equal(t, "edited", view.Body)
	assert.Equal(t, domain.StatusPending, *view.RevisionStatus)
	assert.Equal(t, uint64(5), *view.RevisionID)
}

func TestEffectiveComment_NoRevision(t *testing.T) {
	comment := &domain.Comment{ID: 10, Body: "original", Status: domain.StatusApproved}

	view := EffectiveComment(comment, nil)

	assert.Equal(t, "original", view.Body)
	assert.Nil(t, view.RevisionID)
}

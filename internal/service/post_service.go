package service

import (
	"time"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/repository"
)

// PostService handles post submission, the edit/revision workflow and the
// moderation transitions that act on posts.
type PostService interface {
	Submit(actor *domain.Actor, req *domain.SubmitPostRequest) (*domain.Post, error)
	RequestEdit(actor *domain.Actor, postID uint64, patch *domain.PostPatch) (*domain.PostRevision, error)
	GetForViewer(viewer *domain.Actor, postID uint64) (*domain.PostView, error)

	ApproveNew(actor *domain.Actor, postID uint64) (*domain.Post, error)
	RejectNew(actor *domain.Actor, postID uint64, note *string) (*domain.Post, error)
	ApproveEdit(actor *domain.Actor, revisionID uint64) (*domain.Post, error)
	RejectEdit(actor *domain.Actor, revisionID uint64, note *string) (*domain.PostRevision, error)
	Delete(actor *domain.Actor, postID uint64) error

	Like(actor *domain.Actor, postID uint64) error
	Unlike(actor *domain.Actor, postID uint64) error

	ListPending(actor *domain.Actor) ([]*domain.Post, error)
	ListPendingRevisions(actor *domain.Actor) ([]*domain.PostRevision, error)
}

type postService struct {
	posts   repository.PostRepository
	tags    repository.TagRepository
	tagSvc  TagService
	indexer SearchIndexer
}

// NewPostService creates a new PostService
func NewPostService(posts repository.PostRepository, tags repository.TagRepository, tagSvc TagService, indexer SearchIndexer) PostService {
	return &postService{posts: posts, tags: tags, tagSvc: tagSvc, indexer: indexer}
}

// Submit resolves the tag references first, so a tag failure never leaves a
// half-created post. Admin submissions publish immediately.
func (s *postService) Submit(actor *domain.Actor, req *domain.SubmitPostRequest) (*domain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res, err := s.tagSvc.Resolve(actor, req.TagIDs, req.TagNames)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID:        actor.ID,
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Status:          domain.StatusPending,
		PendingTagSlugs: res.PendingTagSlugs,
	}
	if actor.IsAdmin() {
		now := time.Now()
		post.Status = domain.StatusPublished
		post.PublishedAt = &now
	}

	if err := s.posts.CreateWithTags(post, res.ResolvedTagIDs); err != nil {
		return nil, err
	}
	if post.Status == domain.StatusPublished {
		s.indexer.UpsertPost(post)
	}
	return post, nil
}

// RequestEdit files a sparse patch against a post. Admin patches apply to
// canonical directly; everyone else gets a pending revision.
func (s *postService) RequestEdit(actor *domain.Actor, postID uint64, patch *domain.PostPatch) (*domain.PostRevision, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, common.ErrEmptyPatch
	}

	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}

	if actor.IsAdmin() {
		return nil, s.adminEdit(actor, post, patch)
	}

	rev := &domain.PostRevision{
		PostID:   post.ID,
		AuthorID: actor.ID,
		Title:    patch.Title.Ptr(),
		Excerpt:  patch.Excerpt.Ptr(),
		Content:  patch.Content.Ptr(),
		Status:   domain.StatusPending,
	}
	if patch.TagsSet() {
		rev.TagsSet = true
		rev.TagIDs = patch.TagIDs.Value
		rev.TagNames = patch.TagNames.Value
	}
	if err := s.posts.CreateRevision(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// adminEdit applies the patch to canonical immediately. A tags change
// replaces the links wholesale and recomputes pending slugs from scratch:
// last writer wins for the whole tag set.
func (s *postService) adminEdit(actor *domain.Actor, post *domain.Post, patch *domain.PostPatch) error {
	applyPostPatch(post, patch)

	if !patch.TagsSet() {
		if err := s.posts.Update(post); err != nil {
			return err
		}
		s.reindex(post)
		return nil
	}

	res, err := s.tagSvc.Resolve(actor, patch.TagIDs.Value, patch.TagNames.Value)
	if err != nil {
		return err
	}
	post.PendingTagSlugs = domain.StringList(res.PendingTagSlugs)
	if err := s.posts.UpdateWithTags(post, res.ResolvedTagIDs); err != nil {
		return err
	}
	s.reindex(post)
	return nil
}

// applyPostPatch copies the present fields of a patch onto the canonical row
func applyPostPatch(post *domain.Post, patch *domain.PostPatch) {
	if patch.Title.Set {
		post.Title = patch.Title.Value
	}
	if patch.Excerpt.Set {
		if patch.Excerpt.Value == "" {
			post.Excerpt = nil
		} else {
			v := patch.Excerpt.Value
			post.Excerpt = &v
		}
	}
	if patch.Content.Set {
		post.Content = patch.Content.Value
	}
}

// GetForViewer fetches one post as a given viewer sees it. Non-published
// posts are visible only to their author and admins; everyone else gets
// not-found rather than forbidden, so drafts stay unenumerable.
func (s *postService) GetForViewer(viewer *domain.Actor, postID uint64) (*domain.PostView, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}

	if post.Status != domain.StatusPublished {
		if viewer == nil || (post.AuthorID != viewer.ID && !viewer.IsAdmin()) {
			return nil, common.ErrPostNotFound
		}
	}

	var rev *domain.PostRevision
	if viewer != nil && viewer.ID == post.AuthorID {
		rev, err = s.posts.LatestRevisionByAuthor(post.ID, viewer.ID)
		if err != nil {
			return nil, err
		}
	}
	return EffectivePost(post, rev), nil
}

// ApproveNew publishes a pending post. Pending slugs whose tag got approved
// while the post sat in the queue are linked as part of the same action.
func (s *postService) ApproveNew(actor *domain.Actor, postID uint64) (*domain.Post, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(post.Status, domain.StatusPublished); err != nil {
		return nil, err
	}

	now := time.Now()
	post.Status = domain.StatusPublished
	post.PublishedAt = &now
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}

	if len(post.PendingTagSlugs) > 0 {
		matched, err := s.tags.FindBySlugs(post.PendingTagSlugs)
		if err != nil {
			return nil, err
		}
		if len(matched) > 0 {
			ids := make([]uint64, 0, len(matched))
			slugs := make([]string, 0, len(matched))
			for _, t := range matched {
				ids = append(ids, t.ID)
				slugs = append(slugs, t.Slug)
			}
			if err := s.posts.LinkTagsAndRemoveSlugs(post.ID, ids, slugs); err != nil {
				return nil, err
			}
			remaining := post.PendingTagSlugs
			for _, slug := range slugs {
				remaining = remaining.Without(slug)
			}
			post.PendingTagSlugs = remaining
		}
	}

	s.indexer.UpsertPost(post)
	return post, nil
}

func (s *postService) RejectNew(actor *domain.Actor, postID uint64, note *string) (*domain.Post, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(post.Status, domain.StatusRejected); err != nil {
		return nil, err
	}

	post.Status = domain.StatusRejected
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	s.indexer.RemovePost(post.ID)
	return post, nil
}

// ApproveEdit lands a revision on canonical. Tag proposals in the revision
// resolve against approved tags only; unresolved names fall back to the
// pending slug list rather than force-creating tags during review.
func (s *postService) ApproveEdit(actor *domain.Actor, revisionID uint64) (*domain.Post, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	rev, err := s.posts.FindRevisionByID(revisionID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(rev.Status, domain.StatusApproved); err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(rev.PostID)
	if err != nil {
		return nil, err
	}

	if rev.Title != nil {
		post.Title = *rev.Title
	}
	if rev.Excerpt != nil {
		if *rev.Excerpt == "" {
			post.Excerpt = nil
		} else {
			post.Excerpt = rev.Excerpt
		}
	}
	if rev.Content != nil {
		post.Content = *rev.Content
	}

	var tagIDs []uint64
	if rev.TagsSet {
		res, err := s.tagSvc.ResolveApprovedOnly(rev.TagIDs, rev.TagNames)
		if err != nil {
			return nil, err
		}
		tagIDs = res.ResolvedTagIDs
		post.PendingTagSlugs = domain.StringList(res.PendingTagSlugs)
	}

	rev.Status = domain.StatusApproved
	rev.ReviewedAt, rev.ReviewedBy = reviewStamp(actor.ID)
	if err := s.posts.ApplyRevision(post, rev, tagIDs, rev.TagsSet); err != nil {
		return nil, err
	}

	s.reindex(post)
	return post, nil
}

func (s *postService) RejectEdit(actor *domain.Actor, revisionID uint64, note *string) (*domain.PostRevision, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	rev, err := s.posts.FindRevisionByID(revisionID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(rev.Status, domain.StatusRejected); err != nil {
		return nil, err
	}

	rev.Status = domain.StatusRejected
	rev.ReviewedAt, rev.ReviewedBy = reviewStamp(actor.ID)
	rev.ReviewerNote = note
	if err := s.posts.UpdateRevision(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *postService) Delete(actor *domain.Actor, postID uint64) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if _, err := s.posts.FindByID(postID); err != nil {
		return err
	}
	if err := s.posts.DeleteCascade(postID); err != nil {
		return err
	}
	s.indexer.RemovePost(postID)
	return nil
}

func (s *postService) Like(actor *domain.Actor, postID uint64) error {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return err
	}
	if post.Status != domain.StatusPublished {
		return common.ErrPostNotPublished
	}
	return s.posts.AddLike(postID, actor.ID)
}

func (s *postService) Unlike(actor *domain.Actor, postID uint64) error {
	if _, err := s.posts.FindByID(postID); err != nil {
		return err
	}
	return s.posts.RemoveLike(postID, actor.ID)
}

func (s *postService) ListPending(actor *domain.Actor) ([]*domain.Post, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.posts.ListPending()
}

func (s *postService) ListPendingRevisions(actor *domain.Actor) ([]*domain.PostRevision, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.posts.ListPendingRevisions()
}

// reindex pushes the current canonical state to search, removing the
// document when the post is not publicly visible.
func (s *postService) reindex(post *domain.Post) {
	if post.Status == domain.StatusPublished {
		s.indexer.UpsertPost(post)
	} else {
		s.indexer.RemovePost(post.ID)
	}
}

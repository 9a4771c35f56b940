package service

import (
	"time"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/repository"
)

// CommentService handles comment submission, the edit/revision workflow and
// the moderation transitions that act on comments.
type CommentService interface {
	Submit(actor *domain.Actor, postID uint64, req *domain.SubmitCommentRequest) (*domain.Comment, error)
	RequestEdit(actor *domain.Actor, commentID uint64, patch *domain.CommentPatch) (*domain.CommentRevision, error)
	GetForViewer(viewer *domain.Actor, commentID uint64) (*domain.CommentView, error)
	ListForPost(viewer *domain.Actor, postID uint64) ([]*domain.CommentView, error)

	ApproveNew(actor *domain.Actor, commentID uint64) (*domain.Comment, error)
	RejectNew(actor *domain.Actor, commentID uint64, note *string) (*domain.Comment, error)
	ApproveEdit(actor *domain.Actor, revisionID uint64) (*domain.Comment, error)
	RejectEdit(actor *domain.Actor, revisionID uint64, note *string) (*domain.CommentRevision, error)
	Delete(actor *domain.Actor, commentID uint64) error

	ListPending(actor *domain.Actor) ([]*domain.Comment, error)
	ListPendingRevisions(actor *domain.Actor) ([]*domain.CommentRevision, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

// Submit attaches a comment to a published post. A reply's parent must sit
// on the same post, and replying to an unapproved comment is allowed only
// for its own author and admins.
func (s *commentService) Submit(actor *domain.Actor, postID uint64, req *domain.SubmitCommentRequest) (*domain.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.StatusPublished {
		return nil, common.ErrPostNotPublished
	}

	if req.ParentID != nil {
		parent, err := s.comments.FindByID(*req.ParentID)
		if err != nil {
			return nil, common.ErrParentNotFound
		}
		if parent.PostID != postID {
			return nil, common.ErrParentWrongThread
		}
		if parent.Status != domain.StatusApproved &&
			parent.AuthorID != actor.ID && !actor.IsAdmin() {
			return nil, common.ErrParentNotVisible
		}
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: actor.ID,
		ParentID: req.ParentID,
		Body:     req.Body,
		Status:   domain.StatusPending,
	}
	if actor.IsAdmin() {
		now := time.Now()
		comment.Status = domain.StatusApproved
		comment.ApprovedAt = &now
	}

	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) RequestEdit(actor *domain.Actor, commentID uint64, patch *domain.CommentPatch) (*domain.CommentRevision, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, common.ErrEmptyPatch
	}

	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}

	if actor.IsAdmin() {
		comment.Body = patch.Body.Value
		if err := s.comments.Update(comment); err != nil {
			return nil, err
		}
		return nil, nil
	}

	rev := &domain.CommentRevision{
		CommentID: comment.ID,
		AuthorID:  actor.ID,
		Body:      patch.Body.Ptr(),
		Status:    domain.StatusPending,
	}
	if err := s.comments.CreateRevision(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// GetForViewer fetches one comment as a given viewer sees it. Unapproved
// comments surface only to their author and admins, as not-found otherwise.
func (s *commentService) GetForViewer(viewer *domain.Actor, commentID uint64) (*domain.CommentView, error) {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}

	if comment.Status != domain.StatusApproved {
		if viewer == nil || (comment.AuthorID != viewer.ID && !viewer.IsAdmin()) {
			return nil, common.ErrCommentNotFound
		}
	}

	var rev *domain.CommentRevision
	if viewer != nil && viewer.ID == comment.AuthorID {
		rev, err = s.comments.LatestRevisionByAuthor(comment.ID, viewer.ID)
		if err != nil {
			return nil, err
		}
	}
	return EffectiveComment(comment, rev), nil
}

// ListForPost returns the approved thread of a published post. The viewer's
// own comments get their revision overlay applied individually.
func (s *commentService) ListForPost(viewer *domain.Actor, postID uint64) ([]*domain.CommentView, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.StatusPublished {
		if viewer == nil || (post.AuthorID != viewer.ID && !viewer.IsAdmin()) {
			return nil, common.ErrPostNotFound
		}
	}

	comments, err := s.comments.ListApprovedByPost(postID)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.CommentView, 0, len(comments))
	for _, c := range comments {
		var rev *domain.CommentRevision
		if viewer != nil && viewer.ID == c.AuthorID {
			rev, err = s.comments.LatestRevisionByAuthor(c.ID, viewer.ID)
			if err != nil {
				return nil, err
			}
		}
		views = append(views, EffectiveComment(c, rev))
	}
	return views, nil
}

func (s *commentService) ApproveNew(actor *domain.Actor, commentID uint64) (*domain.Comment, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(comment.Status, domain.StatusApproved); err != nil {
		return nil, err
	}

	now := time.Now()
	comment.Status = domain.StatusApproved
	comment.ApprovedAt = &now
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) RejectNew(actor *domain.Actor, commentID uint64, note *string) (*domain.Comment, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(comment.Status, domain.StatusRejected); err != nil {
		return nil, err
	}

	comment.Status = domain.StatusRejected
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ApproveEdit(actor *domain.Actor, revisionID uint64) (*domain.Comment, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	rev, err := s.comments.FindRevisionByID(revisionID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(rev.Status, domain.StatusApproved); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(rev.CommentID)
	if err != nil {
		return nil, err
	}

	if rev.Body != nil {
		comment.Body = *rev.Body
	}
	rev.Status = domain.StatusApproved
	rev.ReviewedAt, rev.ReviewedBy = reviewStamp(actor.ID)
	if err := s.comments.ApplyRevision(comment, rev); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) RejectEdit(actor *domain.Actor, revisionID uint64, note *string) (*domain.CommentRevision, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	rev, err := s.comments.FindRevisionByID(revisionID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(rev.Status, domain.StatusRejected); err != nil {
		return nil, err
	}

	rev.Status = domain.StatusRejected
	rev.ReviewedAt, rev.ReviewedBy = reviewStamp(actor.ID)
	rev.ReviewerNote = note
	if err := s.comments.UpdateRevision(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *commentService) Delete(actor *domain.Actor, commentID uint64) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if _, err := s.comments.FindByID(commentID); err != nil {
		return err
	}
	return s.comments.DeleteCascade(commentID)
}

func (s *commentService) ListPending(actor *domain.Actor) ([]*domain.Comment, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.comments.ListPending()
}

func (s *commentService) ListPendingRevisions(actor *domain.Actor) ([]*domain.CommentRevision, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.comments.ListPendingRevisions()
}

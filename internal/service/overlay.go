package service

import "github.com/inkwell-blog/inkwell-backend/internal/domain"

// EffectivePost builds the displayed post for a viewer. rev is the viewer's
// own latest revision (or nil). Approved revisions already landed in the
// canonical row, so only pending and rejected ones overlay; the displayed
// status then comes from the revision so the author sees their edit's fate.
func EffectivePost(post *domain.Post, rev *domain.PostRevision) *domain.PostView {
	view := &domain.PostView{
		ID:              post.ID,
		AuthorID:        post.AuthorID,
		Title:           post.Title,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		Status:          post.Status,
		PendingTagSlugs: post.PendingTagSlugs,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
		PublishedAt:     post.PublishedAt,
	}
	if rev == nil || rev.Status == domain.StatusApproved {
		return view
	}

	if rev.Title != nil {
		view.Title = *rev.Title
	}
	if rev.Excerpt != nil {
		if *rev.Excerpt == "" {
			view.Excerpt = nil
		} else {
			view.Excerpt = rev.Excerpt
		}
	}
	if rev.Content != nil {
		view.Content = *rev.Content
	}

	view.RevisionID = &rev.ID
	status := rev.Status
	view.RevisionStatus = &status
	view.ReviewerNote = rev.ReviewerNote
	return view
}

// EffectiveComment builds the displayed comment for a viewer, overlaying the
// viewer's own latest unapproved revision when present.
func EffectiveComment(comment *domain.Comment, rev *domain.CommentRevision) *domain.CommentView {
	view := &domain.CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		ParentID:  comment.ParentID,
		Body:      comment.Body,
		Status:    comment.Status,
		CreatedAt: comment.CreatedAt,
	}
	if rev == nil || rev.Status == domain.StatusApproved {
		return view
	}

	if rev.Body != nil {
		view.Body = *rev.Body
	}

	view.RevisionID = &rev.ID
	status := rev.Status
	view.RevisionStatus = &status
	view.ReviewerNote = rev.ReviewerNote
	return view
}

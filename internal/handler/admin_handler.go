package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/middleware"
	"github.com/inkwell-blog/inkwell-backend/internal/service"
	"github.com/inkwell-blog/inkwell-backend/pkg/cache"
	"github.com/inkwell-blog/inkwell-backend/pkg/ginutil"
)

// AdminHandler exposes the moderation queue and the approve/reject/delete
// transitions for posts, comments, tags and their revisions.
type AdminHandler struct {
	posts    service.PostService
	comments service.CommentService
	tags     service.TagService
	cache    cache.Service
}

func NewAdminHandler(posts service.PostService, comments service.CommentService, tags service.TagService, cacheSvc cache.Service) *AdminHandler {
	return &AdminHandler{posts: posts, comments: comments, tags: tags, cache: cacheSvc}
}

// bindNote reads the optional reviewer note from a reject body
func bindNote(c *gin.Context) *string {
	var req domain.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil
	}
	return req.Note
}

// invalidateFeed drops cached anonymous feed pages after a visibility change
func (h *AdminHandler) invalidateFeed() {
	_ = h.cache.InvalidateFeed(context.Background())
}

// GetQueue handles GET /api/v1/admin/queue
//
// One response with every pending item grouped by kind, oldest first.
func (h *AdminHandler) GetQueue(c *gin.Context) {
	actor := middleware.GetActor(c)

	pendingPosts, err := h.posts.ListPending(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	postRevs, err := h.posts.ListPendingRevisions(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pendingComments, err := h.comments.ListPending(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	commentRevs, err := h.comments.ListPendingRevisions(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tagReqs, err := h.tags.ListPendingRequests(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tagRevs, err := h.tags.ListPendingRevisions(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"posts":             pendingPosts,
		"post_revisions":    postRevs,
		"comments":          pendingComments,
		"comment_revisions": commentRevs,
		"tag_requests":      tagReqs,
		"tag_revisions":     tagRevs,
	}, nil)
}

// ApprovePost handles POST /api/v1/admin/posts/:id/approve
func (h *AdminHandler) ApprovePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	post, err := h.posts.ApproveNew(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("post", "approve")
	h.invalidateFeed()
	common.SuccessResponse(c, post, nil)
}

// RejectPost handles POST /api/v1/admin/posts/:id/reject
func (h *AdminHandler) RejectPost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	post, err := h.posts.RejectNew(middleware.GetActor(c), id, bindNote(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("post", "reject")
	common.SuccessResponse(c, post, nil)
}

// DeletePost handles DELETE /api/v1/admin/posts/:id
func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	if err := h.posts.Delete(middleware.GetActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("post", "delete")
	h.invalidateFeed()
	c.Status(204)
}

// ApprovePostRevision handles POST /api/v1/admin/post-revisions/:id/approve
func (h *AdminHandler) ApprovePostRevision(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid revision ID", err)
		return
	}

	post, err := h.posts.ApproveEdit(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("post_revision", "approve")
	h.invalidateFeed()
	common.SuccessResponse(c, post, nil)
}

// RejectPostRevision handles POST /api/v1/admin/post-revisions/:id/reject
func (h *AdminHandler) RejectPostRevision(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid revision ID", err)
		return
	}

	rev, err := h.posts.RejectEdit(middleware.GetActor(c), id, bindNote(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("post_revision", "reject")
	common.SuccessResponse(c, rev, nil)
}

// ApproveComment handles POST /api/v1/admin/comments/:id/approve
func (h *AdminHandler) ApproveComment(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid comment ID", err)
		return
	}

	comment, err := h.comments.ApproveNew(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("comment", "approve")
	common.SuccessResponse(c, comment, nil)
}

// RejectComment handles POST /api/v1/admin/comments/:id/reject
func (h *AdminHandler) RejectComment(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid comment ID", err)
		return
	}

	comment, err := h.comments.RejectNew(middleware.GetActor(c), id, bindNote(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("comment", "reject")
	common.SuccessResponse(c, comment, nil)
}

// DeleteComment handles DELETE /api/v1/admin/comments/:id
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid comment ID", err)
		return
	}

	if err := h.comments.Delete(middleware.GetActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("comment", "delete")
	c.Status(204)
}

// ApproveCommentRevision handles POST /api/v1/admin/comment-revisions/:id/approve
func (h *AdminHandler) ApproveCommentRevision(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid revision ID", err)
		return
	}

	comment, err := h.comments.ApproveEdit(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("comment_revision", "approve")
	common.SuccessResponse(c, comment, nil)
}

// RejectCommentRevision handles POST /api/v1/admin/comment-revisions/:id/reject
func (h *AdminHandler) RejectCommentRevision(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid revision ID", err)
		return
	}

	rev, err := h.comments.RejectEdit(middleware.GetActor(c), id, bindNote(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("comment_revision", "reject")
	common.SuccessResponse(c, rev, nil)
}

// ApproveTagRequest handles POST /api/v1/admin/tag-requests/:id/approve
func (h *AdminHandler) ApproveTagRequest(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid request ID", err)
		return
	}

	tag, err := h.tags.ApproveRequest(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("tag_request", "approve")
	_ = h.cache.Delete(context.Background(), tagListKey)
	common.SuccessResponse(c, tag, nil)
}

// RejectTagRequest handles POST /api/v1/admin/tag-requests/:id/reject
func (h *AdminHandler) RejectTagRequest(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid request ID", err)
		return
	}

	req, err := h.tags.RejectRequest(middleware.GetActor(c), id, bindNote(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("tag_request", "reject")
	common.SuccessResponse(c, req, nil)
}

// ApproveTagRevision handles POST /api/v1/admin/tag-revisions/:id/approve
func (h *AdminHandler) ApproveTagRevision(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid revision ID", err)
		return
	}

	tag, err := h.tags.ApproveRevision(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("tag_revision", "approve")
	_ = h.cache.Delete(context.Background(), tagListKey)
	common.SuccessResponse(c, tag, nil)
}

// RejectTagRevision handles POST /api/v1/admin/tag-revisions/:id/reject
func (h *AdminHandler) RejectTagRevision(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid revision ID", err)
		return
	}

	rev, err := h.tags.RejectRevision(middleware.GetActor(c), id, bindNote(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("tag_revision", "reject")
	common.SuccessResponse(c, rev, nil)
}

// DeleteTag handles DELETE /api/v1/admin/tags/:id
func (h *AdminHandler) DeleteTag(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid tag ID", err)
		return
	}

	if err := h.tags.Delete(middleware.GetActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.CountModerationAction("tag", "delete")
	_ = h.cache.Delete(context.Background(), tagListKey)
	h.invalidateFeed()
	c.Status(204)
}

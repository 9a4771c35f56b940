package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/middleware"
	"github.com/inkwell-blog/inkwell-backend/internal/service"
	"github.com/inkwell-blog/inkwell-backend/pkg/ginutil"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListComments handles GET /api/v1/posts/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	views, err := h.service.ListForPost(middleware.GetActor(c), postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, views, nil)
}

// SubmitComment handles POST /api/v1/posts/:id/comments
func (h *CommentHandler) SubmitComment(c *gin.Context) {
	postID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	var req domain.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	actor := middleware.GetActor(c)
	comment, err := h.service.Submit(actor, postID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.CreatedResponse(c, comment)
}

// GetComment handles GET /api/v1/comments/:comment_id
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "comment_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid comment ID", err)
		return
	}

	view, err := h.service.GetForViewer(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, view, nil)
}

// RequestEdit handles PATCH /api/v1/comments/:comment_id
func (h *CommentHandler) RequestEdit(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "comment_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid comment ID", err)
		return
	}

	var patch domain.CommentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	actor := middleware.GetActor(c)
	rev, err := h.service.RequestEdit(actor, id, &patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if rev == nil {
		c.Status(204)
		return
	}
	common.CreatedResponse(c, rev)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/middleware"
	"github.com/inkwell-blog/inkwell-backend/internal/service"
	"github.com/inkwell-blog/inkwell-backend/pkg/ginutil"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// SubmitPost handles POST /api/v1/posts
func (h *PostHandler) SubmitPost(c *gin.Context) {
	var req domain.SubmitPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	actor := middleware.GetActor(c)
	post, err := h.service.Submit(actor, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.CreatedResponse(c, post)
}

// GetPost handles GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	view, err := h.service.GetForViewer(middleware.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, view, nil)
}

// RequestEdit handles PATCH /api/v1/posts/:id
//
// Sparse body: absent fields stay, present empty fields clear. Authors get a
// pending revision; admins land the change on the post directly.
func (h *PostHandler) RequestEdit(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	var patch domain.PostPatch
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
		// Admin edit: applied directly, nothing queued
		c.Status(204)
		return
	}
	common.CreatedResponse(c, rev)
}

// LikePost handles PUT /api/v1/posts/:id/like
func (h *PostHandler) LikePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	if err := h.service.Like(middleware.GetActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(204)
}

// UnlikePost handles DELETE /api/v1/posts/:id/like
func (h *PostHandler) UnlikePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	if err := h.service.Unlike(middleware.GetActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(204)
}

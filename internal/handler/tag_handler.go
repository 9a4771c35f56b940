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

type TagHandler struct {
	service service.TagService
	cache   cache.Service
}

func NewTagHandler(service service.TagService, cacheSvc cache.Service) *TagHandler {
	return &TagHandler{service: service, cache: cacheSvc}
}

const tagListKey = cache.PrefixTags + "all"

// ListTags handles GET /api/v1/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	var cached []*domain.Tag
	if err := h.cache.Get(c.Request.Context(), tagListKey, &cached); err == nil {
		common.SuccessResponse(c, cached, nil)
		return
	}

	tags, err := h.service.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = h.cache.Set(context.Background(), tagListKey, tags, cache.TTLTags)
	common.SuccessResponse(c, tags, nil)
}

// RequestTag handles POST /api/v1/tags/requests
//
// Admins get the tag created immediately; everyone else queues a request.
func (h *TagHandler) RequestTag(c *gin.Context) {
	var req domain.NewTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	actor := middleware.GetActor(c)
	tag, request, err := h.service.RequestNewTag(actor, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if tag != nil {
		_ = h.cache.Delete(context.Background(), tagListKey)
		common.CreatedResponse(c, tag)
		return
	}
	common.CreatedResponse(c, request)
}

// RequestTagEdit handles PATCH /api/v1/tags/:id
func (h *TagHandler) RequestTagEdit(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid tag ID", err)
		return
	}

	var patch domain.TagPatch
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

	if actor.IsAdmin() {
		_ = h.cache.Delete(context.Background(), tagListKey)
	}
	common.CreatedResponse(c, rev)
}

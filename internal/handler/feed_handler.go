package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/middleware"
	"github.com/inkwell-blog/inkwell-backend/internal/service"
	"github.com/inkwell-blog/inkwell-backend/pkg/ginutil"
)

type FeedHandler struct {
	service service.FeedService
}

func NewFeedHandler(service service.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// GetFeed handles GET /api/v1/feed
//
// Query params: tags (comma-separated slugs), match (any|all), from/to
// (YYYY-MM-DD, inclusive), cursor_date (RFC3339) + cursor_id, limit.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	q := domain.FeedQuery{
		Viewer: middleware.GetActor(c),
		Limit:  ginutil.QueryInt(c, "limit", 0),
	}

	if tags := c.Query("tags"); tags != "" {
		for _, s := range strings.Split(tags, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.TagSlugs = append(q.TagSlugs, s)
			}
		}
	}

	switch c.Query("match") {
	case "", string(domain.MatchAny):
		q.Match = domain.MatchAny
	case string(domain.MatchAll):
		q.Match = domain.MatchAll
	default:
		common.ErrorResponse(c, 400, "Invalid match mode", nil)
		return
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid from date", err)
			return
		}
		q.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid to date", err)
			return
		}
		q.To = &t
	}

	if cursorDate := c.Query("cursor_date"); cursorDate != "" {
		t, err := time.Parse(time.RFC3339Nano, cursorDate)
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid cursor", common.ErrInvalidCursor)
			return
		}
		id := ginutil.QueryUint64(c, "cursor_id")
		if id == 0 {
			common.ErrorResponse(c, 400, "Invalid cursor", common.ErrInvalidCursor)
			return
		}
		q.Cursor = &domain.FeedCursor{Date: t, ID: id}
	}

	page, err := h.service.Assemble(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, page.Posts, &common.Meta{
		Limit:      q.Limit,
		NextCursor: page.NextCursor,
	})
}

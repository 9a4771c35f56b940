package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/pkg/cache"
	"github.com/inkwell-blog/inkwell-backend/pkg/logger"
)

// Idempotency deduplicates write commands by the optional X-Idempotency-Key
// header. The first request claims the (actor, key) pair; replays inside the
// claim window get a conflict instead of creating a second row. Requests
// without the header pass through untouched. Must run after JWTAuth.
func Idempotency(cacheSvc cache.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		actor := GetActor(c)
		if actor == nil {
			c.Next()
			return
		}

		claimed, err := cacheSvc.ClaimIdempotencyKey(c.Request.Context(), actor.ID, key)
		if err != nil {
			// Fail open: dedupe is best-effort, the command itself still runs
			logger.GetLogger().Warn().Err(err).Msg("idempotency claim failed")
			c.Next()
			return
		}
		if !claimed {
			common.ErrorResponse(c, 409, "Duplicate submission", common.ErrDuplicateSubmission)
			c.Abort()
			return
		}

		c.Next()
	}
}

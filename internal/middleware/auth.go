package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/pkg/jwt"
)

const actorKey = "actor"

// JWTAuth requires a valid bearer token and stores the actor in the context
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set(actorKey, &domain.Actor{
			ID:   claims.UserID,
			Role: domain.Role(claims.Role),
		})

		c.Next()
	}
}

// OptionalJWTAuth stores the actor when a valid token is present and lets
// the request through anonymously otherwise. A malformed or expired token is
// still rejected, so a client never silently degrades to the public view.
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			common.ErrorResponse(c, 401, "Invalid token", err)
			c.Abort()
			return
		}

		c.Set(actorKey, &domain.Actor{
			ID:   claims.UserID,
			Role: domain.Role(claims.Role),
		})

		c.Next()
	}
}

// GetActor extracts the authenticated actor from context; nil when anonymous
func GetActor(c *gin.Context) *domain.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	if actor, ok := v.(*domain.Actor); ok {
		return actor
	}
	return nil
}

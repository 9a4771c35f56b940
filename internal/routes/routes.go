package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-blog/inkwell-backend/internal/handler"
	"github.com/inkwell-blog/inkwell-backend/internal/middleware"
	"github.com/inkwell-blog/inkwell-backend/pkg/cache"
	"github.com/inkwell-blog/inkwell-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	feedHandler *handler.FeedHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	tagHandler *handler.TagHandler,
	adminHandler *handler.AdminHandler,
	jwtManager *jwt.Manager,
	cacheSvc cache.Service,
	redisClient *redis.Client,
) {
	api := router.Group("/api/v1")

	// Read surface: anonymous allowed, a valid token upgrades visibility
	read := api.Group("", middleware.OptionalJWTAuth(jwtManager))
	read.GET("/feed", feedHandler.GetFeed)
	read.GET("/posts/:id", postHandler.GetPost)
	read.GET("/posts/:id/comments", commentHandler.ListComments)
	read.GET("/comments/:comment_id", commentHandler.GetComment)
	read.GET("/tags", tagHandler.ListTags)

	// Write surface: auth required, per-user rate limit, idempotency dedupe
	write := api.Group("",
		middleware.JWTAuth(jwtManager),
		middleware.RateLimitPerUser(redisClient, 30),
		middleware.Idempotency(cacheSvc),
	)
	write.POST("/posts", postHandler.SubmitPost)
	write.PATCH("/posts/:id", postHandler.RequestEdit)
	write.PUT("/posts/:id/like", postHandler.LikePost)
	write.DELETE("/posts/:id/like", postHandler.UnlikePost)
	write.POST("/posts/:id/comments", commentHandler.SubmitComment)
	write.PATCH("/comments/:comment_id", commentHandler.RequestEdit)
	write.POST("/tags/requests", tagHandler.RequestTag)
	write.PATCH("/tags/:id", tagHandler.RequestTagEdit)

	// Moderation surface: admin role required
	admin := api.Group("/admin", middleware.JWTAuth(jwtManager), middleware.RequireAdmin())
	admin.GET("/queue", adminHandler.GetQueue)

	admin.POST("/posts/:id/approve", adminHandler.ApprovePost)
	admin.POST("/posts/:id/reject", adminHandler.RejectPost)
	admin.DELETE("/posts/:id", adminHandler.DeletePost)
	admin.POST("/post-revisions/:id/approve", adminHandler.ApprovePostRevision)
	admin.POST("/post-revisions/:id/reject", adminHandler.RejectPostRevision)

	admin.POST("/comments/:id/approve", adminHandler.ApproveComment)
	admin.POST("/comments/:id/reject", adminHandler.RejectComment)
	admin.DELETE("/comments/:id", adminHandler.DeleteComment)
	admin.POST("/comment-revisions/:id/approve", adminHandler.ApproveCommentRevision)
	admin.POST("/comment-revisions/:id/reject", adminHandler.RejectCommentRevision)

	admin.POST("/tag-requests/:id/approve", adminHandler.ApproveTagRequest)
	admin.POST("/tag-requests/:id/reject", adminHandler.RejectTagRequest)
	admin.POST("/tag-revisions/:id/approve", adminHandler.ApproveTagRevision)
	admin.POST("/tag-revisions/:id/reject", adminHandler.RejectTagRevision)
	admin.DELETE("/tags/:id", adminHandler.DeleteTag)
}

package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
)

// respondServiceError maps service-layer sentinels onto HTTP responses. Every
// handler funnels its error path through here so a given failure always
// surfaces with the same status and code.
func respondServiceError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		common.ErrorResponse(c, 400, "Validation failed", err)
		return
	}

	switch {
	case errors.Is(err, common.ErrPostNotFound):
		common.ErrorResponse(c, 404, "Post not found", err)
	case errors.Is(err, common.ErrCommentNotFound):
		common.ErrorResponse(c, 404, "Comment not found", err)
	case errors.Is(err, common.ErrTagNotFound):
		common.ErrorResponse(c, 404, "Tag not found", err)
	case errors.Is(err, common.ErrRevisionNotFound):
		common.ErrorResponse(c, 404, "Revision not found", err)
	case errors.Is(err, common.ErrParentNotFound):
		common.ErrorResponse(c, 404, "Parent comment not found", err)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, 404, "Not found", err)

	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Forbidden", err)
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, 401, "Unauthorized", err)

	case errors.Is(err, common.ErrUnknownTagID):
		common.ErrorResponse(c, 400, "Unknown tag id", err)
	case errors.Is(err, common.ErrEmptyPatch):
		common.ErrorResponse(c, 400, "Patch changes nothing", err)
	case errors.Is(err, common.ErrParentWrongThread):
		common.ErrorResponse(c, 400, "Parent comment belongs to a different post", err)
	case errors.Is(err, common.ErrInvalidCursor):
		common.ErrorResponse(c, 400, "Invalid cursor", err)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, 400, "Invalid input", err)

	case errors.Is(err, common.ErrSlugConflict):
		common.FieldErrorResponse(c, 409, "name", "A tag with this name already exists")
	case errors.Is(err, common.ErrDuplicateTagRequest):
		common.FieldErrorResponse(c, 409, "name", "A request for this tag is already pending")
	case errors.Is(err, common.ErrAlreadyReviewed):
		common.ErrorResponse(c, 409, "Already reviewed", err)
	case errors.Is(err, common.ErrDuplicateSubmission):
		common.ErrorResponse(c, 409, "Duplicate submission", err)
	case errors.Is(err, common.ErrPostNotPublished):
		common.ErrorResponse(c, 409, "Post is not published", err)
	case errors.Is(err, common.ErrParentNotVisible):
		common.ErrorResponse(c, 409, "Parent comment is not visible", err)

	default:
		common.ErrorResponse(c, 500, "Internal server error", err)
	}
}

package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Post errors
	ErrPostNotFound     = errors.New("post not found")
	ErrPostNotPublished = errors.New("post is not published")

	// Comment errors
	ErrCommentNotFound   = errors.New("comment not found")
	ErrParentNotFound    = errors.New("parent comment not found")
	ErrParentNotVisible  = errors.New("parent comment is not visible to you")
	ErrParentWrongThread = errors.New("parent comment belongs to a different post")

	// Tag errors
	ErrTagNotFound         = errors.New("tag not found")
	ErrUnknownTagID        = errors.New("unknown tag id")
	ErrSlugConflict        = errors.New("a tag with this slug already exists")
	ErrDuplicateTagRequest = errors.New("a pending request for this tag already exists")

	// Revision / moderation errors
	ErrRevisionNotFound = errors.New("revision not found")
	ErrAlreadyReviewed  = errors.New("already reviewed")
	ErrEmptyPatch       = errors.New("patch contains no changes")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrInvalidCursor       = errors.New("invalid pagination cursor")
)

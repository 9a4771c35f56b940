package service

import (
	"time"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

// transitions is the single moderation transition table shared by posts,
// comments, tags and every revision row. Terminal states have no entries:
// re-review never happens, a resubmission creates a new row instead.
var transitions = map[domain.Status][]domain.Status{
	domain.StatusPending: {
		domain.StatusPublished,
		domain.StatusApproved,
		domain.StatusRejected,
	},
}

// canTransition reports whether from -> to is a legal moderation transition
func canTransition(from, to domain.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ensureTransition returns ErrAlreadyReviewed when the row left pending
// already, and ErrInvalidInput for a transition the table does not allow.
func ensureTransition(from, to domain.Status) error {
	if from.IsTerminal() {
		return common.ErrAlreadyReviewed
	}
	if !canTransition(from, to) {
		return common.ErrInvalidInput
	}
	return nil
}

// reviewStamp produces the reviewed_at / reviewed_by pair for a transition
func reviewStamp(reviewerID string) (*time.Time, *string) {
	now := time.Now()
	return &now, &reviewerID
}

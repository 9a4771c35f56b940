package domain

// Status is the moderation state shared by posts, comments, tags and their
// revision rows. Posts use "published" as their terminal success state,
// everything else uses "approved".
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// IsTerminal reports whether no further transition is allowed from s
func (s Status) IsTerminal() bool {
	return s == StatusPublished || s == StatusApproved || s == StatusRejected
}

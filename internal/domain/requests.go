package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SubmitPostRequest is the submit-post command payload
type SubmitPostRequest struct {
	Title    string   `json:"title"`
	Excerpt  *string  `json:"excerpt,omitempty"`
	Content  string   `json:"content"`
	TagIDs   []uint64 `json:"tag_ids,omitempty"`
	TagNames []string `json:"tag_names,omitempty"`
}

// Validate implements validation.Validatable
func (r SubmitPostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.TagNames, validation.Length(0, 10)),
	)
}

// PostPatch is a sparse edit request against a post. Absent fields are
// unchanged; present empty fields clear.
type PostPatch struct {
	Title    Field[string]   `json:"title"`
	Excerpt  Field[string]   `json:"excerpt"`
	Content  Field[string]   `json:"content"`
	TagIDs   Field[[]uint64] `json:"tag_ids"`
	TagNames Field[[]string] `json:"tag_names"`
}

// IsEmpty reports whether the patch carries no change at all
func (p PostPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Excerpt.Set && !p.Content.Set && !p.TagIDs.Set && !p.TagNames.Set
}

// TagsSet reports whether the patch touches tags
func (p PostPatch) TagsSet() bool {
	return p.TagIDs.Set || p.TagNames.Set
}

// Validate implements validation.Validatable
func (p PostPatch) Validate() error {
	if p.Title.Set {
		if err := validation.Validate(p.Title.Value, validation.Required, validation.Length(1, 255)); err != nil {
			return err
		}
	}
	if p.Content.Set {
		if err := validation.Validate(p.Content.Value, validation.Required); err != nil {
			return err
		}
	}
	if p.TagNames.Set {
		if err := validation.Validate(p.TagNames.Value, validation.Length(0, 10)); err != nil {
			return err
		}
	}
	return nil
}

// SubmitCommentRequest is the submit-comment command payload
type SubmitCommentRequest struct {
	Body     string  `json:"body"`
	ParentID *uint64 `json:"parent_id,omitempty"`
}

// Validate implements validation.Validatable
func (r SubmitCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required, validation.Length(1, 10000)),
	)
}

// CommentPatch is a sparse edit request against a comment
type CommentPatch struct {
	Body Field[string] `json:"body"`
}

// IsEmpty reports whether the patch carries no change
func (p CommentPatch) IsEmpty() bool {
	return !p.Body.Set
}

// Validate implements validation.Validatable
func (p CommentPatch) Validate() error {
	if p.Body.Set {
		return validation.Validate(p.Body.Value, validation.Required, validation.Length(1, 10000))
	}
	return nil
}

// NewTagRequest is the request-new-tag command payload
type NewTagRequest struct {
	Name string `json:"name"`
}

// Validate implements validation.Validatable
func (r NewTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

// TagPatch proposes renaming an existing tag
type TagPatch struct {
	Name Field[string] `json:"name"`
}

// IsEmpty reports whether the patch carries no change
func (p TagPatch) IsEmpty() bool {
	return !p.Name.Set
}

// Validate implements validation.Validatable
func (p TagPatch) Validate() error {
	if p.Name.Set {
		return validation.Validate(p.Name.Value, validation.Required, validation.Length(1, 100))
	}
	return nil
}

// ReviewRequest carries an optional reviewer note on reject commands
type ReviewRequest struct {
	Note *string `json:"note,omitempty"`
}

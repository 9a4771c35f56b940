package domain

import "encoding/json"

// Field is a sparse-patch field: Set distinguishes "absent from the patch"
// (leave canonical untouched) from "present" (apply, even when the value is
// the zero value, which means clear). A bare pointer cannot make that
// distinction across JSON boundaries.
type Field[T any] struct {
	Value T
	Set   bool
}

// UnmarshalJSON marks the field as set; an explicit JSON null leaves the
// zero value, which downstream code treats as "clear".
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// MarshalJSON emits the value; callers must honor Set themselves when
// deciding whether to include the field at all.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Ptr returns a pointer to the value when set, nil otherwise. Used to map
// patch fields onto nullable revision columns.
func (f Field[T]) Ptr() *T {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

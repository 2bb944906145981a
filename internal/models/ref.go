package models

import "encoding/json"

// Ref is a reference to another record that is either just its id or the
// loaded record itself. It marshals to a bare id or to the full object.
type Ref[T any] struct {
	id       uint
	expanded *T
}

func RefTo[T any](id uint) Ref[T] {
	return Ref[T]{id: id}
}

// ExpandRef returns an expanded reference, or a plain one when v is nil.
func ExpandRef[T any](id uint, v *T) Ref[T] {
	return Ref[T]{id: id, expanded: v}
}

func (r Ref[T]) ID() uint {
	return r.id
}

func (r Ref[T]) Expanded() (*T, bool) {
	return r.expanded, r.expanded != nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.expanded != nil {
		return json.Marshal(r.expanded)
	}
	return json.Marshal(r.id)
}

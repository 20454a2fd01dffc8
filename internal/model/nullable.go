package model

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes a field that was omitted from one explicitly set to null.
// The zero value means "not provided".
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Interface returns the value for a SQL update map: nil for null, the dereferenced value otherwise.
func (n Nullable[T]) Interface() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

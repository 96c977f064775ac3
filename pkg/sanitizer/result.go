package sanitizer

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Result is the outcome of normalizing one raw value: either a valid typed
// value or Invalid. The zero Result is Invalid.
type Result[T any] struct {
	value T
	valid bool
}

func Valid[T any](v T) Result[T] {
	return Result[T]{value: v, valid: true}
}

func Invalid[T any]() Result[T] {
	return Result[T]{}
}

func (r Result[T]) Value() (T, bool) {
	return r.value, r.valid
}

func (r Result[T]) IsValid() bool {
	return r.valid
}

// String returns the canonical text of a valid value and "" for Invalid.
// This is the form written to CSV cells.
func (r Result[T]) String() string {
	if !r.valid {
		return ""
	}
	return fmt.Sprint(r.value)
}

// Any returns the valid value boxed, or nil for Invalid.
func (r Result[T]) Any() any {
	if !r.valid {
		return nil
	}
	return r.value
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

func (r Result[T]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !r.valid {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(r.value)
}

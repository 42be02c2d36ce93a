// Package normalizer converts domain values to plain data and back.
//
// A Normalizer turns a value into strings, numbers and maps that any encoder
// can write; a Denormalizer does the reverse for a requested reflect.Type.
// Both take a Context of per-call options layered over the defaults fixed at
// construction.
package normalizer

import "reflect"

// Normalizer turns supported values into plain data
type Normalizer interface {
	SupportsNormalization(data any) bool
	Normalize(data any, ctx Context) (any, error)
}

// Denormalizer builds values of supported target types from plain data
type Denormalizer interface {
	SupportsDenormalization(data any, target reflect.Type) bool
	Denormalize(data any, target reflect.Type, ctx Context) (any, error)
}

var (
	_ Normalizer   = (*DateTimeNormalizer)(nil)
	_ Denormalizer = (*DateTimeNormalizer)(nil)
	_ Normalizer   = (*RowNormalizer)(nil)
	_ Denormalizer = (*RowNormalizer)(nil)
)

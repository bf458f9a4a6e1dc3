// Package domain contains the fuzzing engine: the session context, the
// fuzzer registry, field-mutator composition and the mutation log.
package domain

import (
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// TypeFuzzer corrupts and synthesizes nodes of one type.
//
// Fuzz takes ownership of node, applies a random non-empty subset of its field
// mutators and returns the result. GenerateRandom builds a new, structurally
// self-consistent instance.
type TypeFuzzer[T any] interface {
	Fuzz(node T) T
	GenerateRandom() T
	Context() *Context
}

// FieldMutator mutates one field, or one cluster of linked fields, of a node
// in place. Every run appends at least one log entry.
type FieldMutator[T any] struct {
	Field  string
	Mutate func(node *T)
}

// FuzzFields is the body shared by composite fuzzers: select a random subset
// of mutators, apply them in order, then run repair (if any) to restore
// structural invariants the chosen combination may have broken.
func FuzzFields[T any](c *Context, node T, mutators []FieldMutator[T], repair func(node *T)) T {
	for _, mutator := range RandomSubset(c, mutators) {
		mutator.Mutate(&node)
	}

	if repair != nil {
		repair(&node)
	}

	return node
}

// Fuzz looks up the fuzzer for kind and applies it to a deep copy of node,
// leaving the caller's value untouched. Configuration errors raised anywhere
// in the call tree are returned.
func Fuzz[T any](c *Context, kind m.Kind, node T) (out T, err error) {
	defer recoverConfiguration(&err)

	fuzzer, err := Lookup[T](c, kind)
	if err != nil {
		return node, err
	}

	return fuzzer.Fuzz(Clone(node)), nil
}

// Generate looks up the fuzzer for kind and synthesizes a new instance.
func Generate[T any](c *Context, kind m.Kind) (out T, err error) {
	defer recoverConfiguration(&err)

	fuzzer, err := Lookup[T](c, kind)
	if err != nil {
		return out, err
	}

	return fuzzer.GenerateRandom(), nil
}

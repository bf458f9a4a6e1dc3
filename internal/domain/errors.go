package domain

import (
	"errors"
	"fmt"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// ErrConfiguration is the root of every error that aborts a fuzz session.
var ErrConfiguration = errors.New("fuzzer configuration error")

// UnregisteredKindError is returned when a fuzzer is requested for a kind that
// has neither a cached instance nor a factory.
type UnregisteredKindError struct {
	Kind m.Kind
}

func (e *UnregisteredKindError) Error() string {
	return fmt.Sprintf("no fuzzer registered for kind %q", e.Kind)
}

// Unwrap ties the error to ErrConfiguration.
func (e *UnregisteredKindError) Unwrap() error {
	return ErrConfiguration
}

// KindMismatchError is returned when the fuzzer registered for a kind does not
// handle the requested Go type.
type KindMismatchError struct {
	Kind  m.Kind
	Want  string
	Found string
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("fuzzer for kind %q is %s, not TypeFuzzer[%s]", e.Kind, e.Found, e.Want)
}

// Unwrap ties the error to ErrConfiguration.
func (e *KindMismatchError) Unwrap() error {
	return ErrConfiguration
}

// configurationPanic carries a configuration error raised by Require through
// the mutator call tree up to Fuzz or Generate.
type configurationPanic struct {
	err error
}

// recoverConfiguration converts a configurationPanic into *err. Any other
// panic is re-raised.
func recoverConfiguration(err *error) {
	r := recover()
	if r == nil {
		return
	}

	if cp, ok := r.(configurationPanic); ok {
		*err = cp.err
		return
	}

	panic(r)
}

// Package model defines the resource object model the fuzzing engine mutates.
package model

// Kind identifies a node type in the registry.
type Kind string

const (
	// Leaf kinds served by the randomness providers.
	KindString   Kind = "string"
	KindID       Kind = "id"
	KindURI      Kind = "uri"
	KindDate     Kind = "date"
	KindDateTime Kind = "dateTime"
	KindBoolean  Kind = "boolean"

	// KindPositiveInt is served by the resource fuzzers' integer provider.
	KindPositiveInt Kind = "positiveInt"

	// Composite datatypes.
	KindCoding          Kind = "Coding"
	KindCodeableConcept Kind = "CodeableConcept"
	KindPeriod          Kind = "Period"
	KindReference       Kind = "Reference"
	KindIdentifier      Kind = "Identifier"
	KindAddress         Kind = "Address"
	KindHumanName       Kind = "HumanName"
	KindContactPoint    Kind = "ContactPoint"
	KindExtension       Kind = "Extension"

	// Resources.
	KindPatient      Kind = "Patient"
	KindOrganization Kind = "Organization"
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

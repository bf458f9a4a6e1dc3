package model

// Coding is a reference to a code defined by a terminology system.
type Coding struct {
	System       *string `json:"system,omitempty"`
	Version      *string `json:"version,omitempty"`
	Code         *string `json:"code,omitempty"`
	Display      *string `json:"display,omitempty"`
	UserSelected *bool   `json:"userSelected,omitempty"`
}

// CodeableConcept is a concept that may be defined by one or more codings.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   *string  `json:"text,omitempty"`
}

// Period is a time range defined by start and end dateTimes.
type Period struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

// Reference points from one resource to another.
type Reference struct {
	Reference *string `json:"reference,omitempty"`
	Display   *string `json:"display,omitempty"`
}

// Identifier is a business identifier for a resource.
type Identifier struct {
	Use      *IdentifierUse   `json:"use,omitempty"`
	Type     *CodeableConcept `json:"type,omitempty"`
	System   *string          `json:"system,omitempty"`
	Value    *string          `json:"value,omitempty"`
	Period   *Period          `json:"period,omitempty"`
	Assigner *Reference       `json:"assigner,omitempty"`
}

// Address is a postal address.
type Address struct {
	Use        *AddressUse `json:"use,omitempty"`
	Line       []string    `json:"line,omitempty"`
	City       *string     `json:"city,omitempty"`
	District   *string     `json:"district,omitempty"`
	State      *string     `json:"state,omitempty"`
	PostalCode *string     `json:"postalCode,omitempty"`
	Country    *string     `json:"country,omitempty"`
	Period     *Period     `json:"period,omitempty"`
}

// HumanName is a name of a person.
type HumanName struct {
	Use    *NameUse `json:"use,omitempty"`
	Text   *string  `json:"text,omitempty"`
	Family *string  `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty"`
	Suffix []string `json:"suffix,omitempty"`
	Period *Period  `json:"period,omitempty"`
}

// ContactPoint is a phone number, email address or similar.
type ContactPoint struct {
	System *ContactPointSystem `json:"system,omitempty"`
	Value  *string             `json:"value,omitempty"`
	Use    *ContactPointUse    `json:"use,omitempty"`
	Rank   *int                `json:"rank,omitempty"`
	Period *Period             `json:"period,omitempty"`
}

// Extension carries additional content. An extension holds either one
// value[x] variant or nested extensions, never both.
type Extension struct {
	URL          *string     `json:"url,omitempty"`
	ValueString  *string     `json:"valueString,omitempty"`
	ValueCode    *string     `json:"valueCode,omitempty"`
	ValueBoolean *bool       `json:"valueBoolean,omitempty"`
	Extension    []Extension `json:"extension,omitempty"`
}

// HasValue reports whether any value[x] variant is populated.
func (e Extension) HasValue() bool {
	return e.ValueString != nil || e.ValueCode != nil || e.ValueBoolean != nil
}

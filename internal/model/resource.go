package model

// Patient is the demographics record of a person receiving care.
type Patient struct {
	ResourceType     string                `json:"resourceType"`
	ID               *string               `json:"id,omitempty"`
	Extension        []Extension           `json:"extension,omitempty"`
	Identifier       []Identifier          `json:"identifier,omitempty"`
	Active           *bool                 `json:"active,omitempty"`
	Name             []HumanName           `json:"name,omitempty"`
	Telecom          []ContactPoint        `json:"telecom,omitempty"`
	Gender           *AdministrativeGender `json:"gender,omitempty"`
	BirthDate        *string               `json:"birthDate,omitempty"`
	DeceasedBoolean  *bool                 `json:"deceasedBoolean,omitempty"`
	DeceasedDateTime *string               `json:"deceasedDateTime,omitempty"`
	Address          []Address             `json:"address,omitempty"`
	MaritalStatus    *CodeableConcept      `json:"maritalStatus,omitempty"`
	ManagingOrg      *Reference            `json:"managingOrganization,omitempty"`
}

// Organization is a formally recognized grouping of people or organizations.
type Organization struct {
	ResourceType string            `json:"resourceType"`
	ID           *string           `json:"id,omitempty"`
	Extension    []Extension       `json:"extension,omitempty"`
	Identifier   []Identifier      `json:"identifier,omitempty"`
	Active       *bool             `json:"active,omitempty"`
	Type         []CodeableConcept `json:"type,omitempty"`
	Name         *string           `json:"name,omitempty"`
	Alias        []string          `json:"alias,omitempty"`
	Telecom      []ContactPoint    `json:"telecom,omitempty"`
	Address      []Address         `json:"address,omitempty"`
	PartOf       *Reference        `json:"partOf,omitempty"`
}

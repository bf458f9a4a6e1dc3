package fuzzers

import (
	"encoding/json"
	"fmt"
	"sort"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// Catalog runs sessions for kinds named at runtime, exchanging nodes as JSON.
type Catalog struct {
	entries map[m.Kind]catalogEntry
}

type catalogEntry struct {
	resource bool
	generate func(c *domain.Context) ([]byte, error)
	fuzz     func(c *domain.Context, input []byte) ([]byte, []byte, error)
}

// NewCatalog creates a catalog of every composite model kind.
func NewCatalog() *Catalog {
	cat := &Catalog{entries: make(map[m.Kind]catalogEntry)}

	addEntry[m.Coding](cat, m.KindCoding, false)
	addEntry[m.CodeableConcept](cat, m.KindCodeableConcept, false)
	addEntry[m.Period](cat, m.KindPeriod, false)
	addEntry[m.Reference](cat, m.KindReference, false)
	addEntry[m.Identifier](cat, m.KindIdentifier, false)
	addEntry[m.Address](cat, m.KindAddress, false)
	addEntry[m.HumanName](cat, m.KindHumanName, false)
	addEntry[m.ContactPoint](cat, m.KindContactPoint, false)
	addEntry[m.Extension](cat, m.KindExtension, false)
	addEntry[m.Patient](cat, m.KindPatient, true)
	addEntry[m.Organization](cat, m.KindOrganization, true)

	return cat
}

func addEntry[T any](cat *Catalog, kind m.Kind, resource bool) {
	cat.entries[kind] = catalogEntry{
		resource: resource,
		generate: func(c *domain.Context) ([]byte, error) {
			node, err := domain.Generate[T](c, kind)
			if err != nil {
				return nil, err
			}

			return json.Marshal(node)
		},
		fuzz: func(c *domain.Context, input []byte) ([]byte, []byte, error) {
			var node T
			if err := json.Unmarshal(input, &node); err != nil {
				return nil, nil, fmt.Errorf("decode %s: %w", kind, err)
			}

			// Encode before fuzzing: Fuzz edits shared slices in place.
			original, err := json.Marshal(node)
			if err != nil {
				return nil, nil, err
			}

			fuzzed, err := domain.Fuzz(c, kind, node)
			if err != nil {
				return nil, nil, err
			}

			resource, err := json.Marshal(fuzzed)
			if err != nil {
				return nil, nil, err
			}

			return original, resource, nil
		},
	}
}

// Kinds returns the catalog's kinds, sorted.
func (cat *Catalog) Kinds() []m.Kind {
	kinds := make([]m.Kind, 0, len(cat.entries))
	for kind := range cat.entries {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i] < kinds[j]
	})

	return kinds
}

// IsResource reports whether kind is a top-level resource.
func (cat *Catalog) IsResource(kind m.Kind) bool {
	return cat.entries[kind].resource
}

// RunCase generates a node of kind, or fuzzes input when it is non-empty.
// It returns the normalized input (nil when generating) and the result.
func (cat *Catalog) RunCase(c *domain.Context, kind m.Kind, input []byte) ([]byte, []byte, error) {
	entry, ok := cat.entries[kind]
	if !ok {
		return nil, nil, &domain.UnregisteredKindError{Kind: kind}
	}

	if len(input) == 0 {
		resource, err := entry.generate(c)
		return nil, resource, err
	}

	if entry.resource {
		if err := checkResourceType(kind, input); err != nil {
			return nil, nil, err
		}
	}

	return entry.fuzz(c, input)
}

func checkResourceType(kind m.Kind, input []byte) error {
	var header struct {
		ResourceType string `json:"resourceType"`
	}

	if err := json.Unmarshal(input, &header); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}

	if header.ResourceType != string(kind) {
		return fmt.Errorf("input resourceType %q does not match kind %q", header.ResourceType, kind)
	}

	return nil
}

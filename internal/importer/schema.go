package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a schedule import
// file: the resource catalog plus events with their phases. Refs are
// file-local handles; real ids are minted during conversion.
type ImportSchema struct {
	PhaseTypes []PhaseTypeImport `json:"phase_types,omitempty"`
	Vehicles   []VehicleImport   `json:"vehicles,omitempty"`
	Crew       []EmployeeImport  `json:"crew,omitempty"`
	Events     []EventImport     `json:"events"`
}

// PhaseTypeImport defines a phase type in the import file.
type PhaseTypeImport struct {
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Priority int    `json:"priority,omitempty"`
	Color    string `json:"color,omitempty"`
}

// VehicleImport defines a bookable vehicle in the import file.
type VehicleImport struct {
	Ref   string `json:"ref"`
	Name  string `json:"name"`
	Plate string `json:"plate,omitempty"`
	Kind  string `json:"kind"`
	Seats int    `json:"seats,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// EmployeeImport defines a crew member in the import file.
type EmployeeImport struct {
	Ref       string `json:"ref"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// EventImport defines an event with its nested phases.
type EventImport struct {
	Name   string        `json:"name"`
	Venue  string        `json:"venue,omitempty"`
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Status string        `json:"status,omitempty"`
	Notes  string        `json:"notes,omitempty"`
	Phases []PhaseImport `json:"phases,omitempty"`
}

// PhaseImport defines one phase of an event. TypeRef must name a phase
// type declared in the same file.
type PhaseImport struct {
	TypeRef string `json:"type_ref"`
	Name    string `json:"name"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Order   int    `json:"order,omitempty"`
	Color   string `json:"color,omitempty"`
}

// LoadImportSchema reads and parses a schedule import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

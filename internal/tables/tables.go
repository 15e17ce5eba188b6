// Package tables holds the read-only reference data the resolvers search:
// rooms (with their occupants), departments and the general Q&A sheet.
package tables

import (
	"context"
	"slices"
)

// Room is one row of the rooms sheet. Staff lookups also read from it since
// every staff member is listed as the person in a room.
type Room struct {
	Number      string `json:"room_number"`
	Floor       string `json:"floor"`
	Purpose     string `json:"purpose"`
	Person      string `json:"person_in_room,omitempty"`
	Department  string `json:"department"`
	Description string `json:"description"`
	Photo       string `json:"photo,omitempty"`
}

// Department is one row of the departments sheet
type Department struct {
	Name        string `json:"department"`
	Description string `json:"description"`
	Career      string `json:"career_after_graduation"`
}

// GeneralQA is one row of the general chatbot sheet
type GeneralQA struct {
	Intent   string `json:"emotion_intent"`
	Example  string `json:"example_question"`
	Response string `json:"response"`
}

// Tables is the immutable set of reference tables. Accessors hand out copies,
// so a Tables value can be shared by concurrent requests without locking.
type Tables struct {
	rooms       []Room
	departments []Department
	general     []GeneralQA
}

// New builds a Tables value from the given rows. The slices are copied.
func New(rooms []Room, departments []Department, general []GeneralQA) *Tables {
	return &Tables{
		rooms:       slices.Clone(rooms),
		departments: slices.Clone(departments),
		general:     slices.Clone(general),
	}
}

// Rooms returns the room rows in sheet order
func (t *Tables) Rooms() []Room {
	return slices.Clone(t.rooms)
}

// Departments returns the department rows in sheet order
func (t *Tables) Departments() []Department {
	return slices.Clone(t.departments)
}

// General returns the general Q&A rows in sheet order
func (t *Tables) General() []GeneralQA {
	return slices.Clone(t.general)
}

// Counts reports the number of rows per table, for logging and health checks
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		"rooms":       len(t.rooms),
		"departments": len(t.departments),
		"general":     len(t.general),
	}
}

// Source loads the reference tables once at startup
type Source interface {
	Load(ctx context.Context) (*Tables, error)

	// Name returns the source name for logging
	Name() string
}

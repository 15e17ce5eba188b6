package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesInput(t *testing.T) {
	rooms := []Room{{Number: "G-16", Purpose: "Registration Office"}}
	tbl := New(rooms, nil, nil)

	rooms[0].Number = "X-99"
	assert.Equal(t, "G-16", tbl.Rooms()[0].Number)
}

func TestAccessorsReturnCopies(t *testing.T) {
	tbl := New(
		[]Room{{Number: "G-16"}},
		[]Department{{Name: "Computer Engineering"}},
		[]GeneralQA{{Intent: "greeting", Response: "Hello"}},
	)

	tbl.Rooms()[0].Number = "changed"
	tbl.Departments()[0].Name = "changed"
	tbl.General()[0].Response = "changed"

	assert.Equal(t, "G-16", tbl.Rooms()[0].Number)
	assert.Equal(t, "Computer Engineering", tbl.Departments()[0].Name)
	assert.Equal(t, "Hello", tbl.General()[0].Response)
}

func TestCounts(t *testing.T) {
	tbl := New(make([]Room, 3), make([]Department, 2), nil)
	assert.Equal(t, map[string]int{"rooms": 3, "departments": 2, "general": 0}, tbl.Counts())
}

func TestSheetParsing(t *testing.T) {
	t.Run("missing cells load as empty strings", func(t *testing.T) {
		s := newSheet("rooms", [][]string{
			{ColRoomNumber, ColFloor, ColPurpose, ColPerson, ColDepartment, ColDescription, ColPhoto},
			{"G-16", "ground", "Registration Office", " Ms. Eman Nasih "},
		})
		rooms, err := parseRooms(s)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "Ms. Eman Nasih", rooms[0].Person)
		assert.Equal(t, "", rooms[0].Department)
		assert.Equal(t, "", rooms[0].Photo)
	})

	t.Run("blank rows are skipped", func(t *testing.T) {
		s := newSheet("departments", [][]string{
			{ColDepartment, ColDescription, ColCareer},
			{"", " ", ""},
			{"Pharmacy", "Drugs.", "Pharmacist"},
		})
		depts, err := parseDepartments(s)
		require.NoError(t, err)
		require.Len(t, depts, 1)
		assert.Equal(t, "Pharmacy", depts[0].Name)
	})

	t.Run("missing required column", func(t *testing.T) {
		s := newSheet("rooms", [][]string{{ColRoomNumber, ColFloor}})
		_, err := parseRooms(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ColPurpose)
	})

	t.Run("general sheet columns are optional except response", func(t *testing.T) {
		s := newSheet("general", [][]string{
			{ColResponse},
			{"We open at 8."},
		})
		general, err := parseGeneral(s)
		require.NoError(t, err)
		assert.Equal(t, []GeneralQA{{Response: "We open at 8."}}, general)
	})

	t.Run("empty sheet", func(t *testing.T) {
		_, err := parseGeneral(newSheet("general", nil))
		assert.Error(t, err)
	})
}

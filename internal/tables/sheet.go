package tables

import (
	"strings"

	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
)

// Column headers used by the university workbooks
const (
	ColRoomNumber  = "Room_Number"
	ColFloor       = "Floor"
	ColPurpose     = "Purpose"
	ColPerson      = "Person_in_Room"
	ColDepartment  = "Department"
	ColDescription = "Description"
	ColPhoto       = "Photo"

	ColCareer = "Career_After_Graduation"

	ColEmotionIntent   = "Emotion_Intent"
	ColExampleQuestion = "Example_Question"
	ColResponse        = "Response"
)

// sheet is a header row plus data rows as read from a worksheet
type sheet struct {
	name   string
	header map[string]int
	rows   [][]string
}

func newSheet(name string, rows [][]string) *sheet {
	s := &sheet{name: name, header: make(map[string]int)}
	if len(rows) == 0 {
		return s
	}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, dup := s.header[h]; !dup && h != "" {
			s.header[h] = i
		}
	}
	s.rows = rows[1:]
	return s
}

// require checks that every named column is present in the header row
func (s *sheet) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := s.header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewMissingColumnError(s.name, missing)
	}
	return nil
}

// cell returns the trimmed value of column col in row, or "" when the column
// or the cell is absent. Blank cells load as empty strings.
func (s *sheet) cell(row []string, col string) string {
	idx, ok := s.header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// blank reports whether every cell of the row is empty
func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRooms(s *sheet) ([]Room, error) {
	if err := s.require(ColRoomNumber, ColFloor, ColPurpose); err != nil {
		return nil, err
	}
	rooms := make([]Room, 0, len(s.rows))
	for _, row := range s.rows {
		if blank(row) {
			continue
		}
		rooms = append(rooms, Room{
			Number:      s.cell(row, ColRoomNumber),
			Floor:       s.cell(row, ColFloor),
			Purpose:     s.cell(row, ColPurpose),
			Person:      s.cell(row, ColPerson),
			Department:  s.cell(row, ColDepartment),
			Description: s.cell(row, ColDescription),
			Photo:       s.cell(row, ColPhoto),
		})
	}
	return rooms, nil
}

func parseDepartments(s *sheet) ([]Department, error) {
	if err := s.require(ColDepartment); err != nil {
		return nil, err
	}
	depts := make([]Department, 0, len(s.rows))
	for _, row := range s.rows {
		if blank(row) {
			continue
		}
		depts = append(depts, Department{
			Name:        s.cell(row, ColDepartment),
			Description: s.cell(row, ColDescription),
			Career:      s.cell(row, ColCareer),
		})
	}
	return depts, nil
}

func parseGeneral(s *sheet) ([]GeneralQA, error) {
	if err := s.require(ColResponse); err != nil {
		return nil, err
	}
	general := make([]GeneralQA, 0, len(s.rows))
	for _, row := range s.rows {
		if blank(row) {
			continue
		}
		general = append(general, GeneralQA{
			Intent:   s.cell(row, ColEmotionIntent),
			Example:  s.cell(row, ColExampleQuestion),
			Response: s.cell(row, ColResponse),
		})
	}
	return general, nil
}

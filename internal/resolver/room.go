package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

// roomNumberPattern matches ground floor rooms (G-12, g12) and upper floor
// rooms (1-05). Applied to the raw question so the hyphen survives.
var roomNumberPattern = regexp.MustCompile(`(?i)\b(G-?\d{1,3}|\d-\d{1,3})\b`)

// labDepartments are checked in order for "how many <dept> labs" questions
var labDepartments = []string{"nursing", "dentistry", "physiotherapy", "architecture", "pharmacy"}

// Room answers room counts ("how many ...") and direct room number lookups
func (r *Resolver) Room(question string) string {
	q := fuzzy.Normalize(question)
	if strings.Contains(q, "how many") {
		return r.countRooms(q)
	}

	match := roomNumberPattern.FindString(question)
	if match == "" {
		return "Could you please tell me the room number again? I want to be sure I find the right room."
	}

	number := CanonicalRoomNumber(match)
	for _, room := range r.tables.Rooms() {
		if strings.ToUpper(room.Number) != number {
			continue
		}
		if room.Person != "" {
			return fmt.Sprintf("Room %s is on the %s floor. It is used for %s, and %s uses this room.",
				number, room.Floor, room.Purpose, room.Person)
		}
		return fmt.Sprintf("Room %s is on the %s floor. It is used for %s.", number, room.Floor, room.Purpose)
	}

	return "I can't find information about this room. Please double-check the number."
}

// CanonicalRoomNumber upper-cases a matched room token and inserts the
// missing hyphen after a ground floor prefix: "g16" becomes "G-16".
func CanonicalRoomNumber(token string) string {
	rn := strings.ToUpper(token)
	if strings.HasPrefix(rn, "G") && !strings.Contains(rn, "-") {
		rn = "G-" + rn[1:]
	}
	return rn
}

func (r *Resolver) countRooms(q string) string {
	rooms := r.tables.Rooms()

	if fuzzy.ContainsAny(q, "wc", "toilet", "bathroom", "restroom") {
		n := countWhere(rooms, func(purpose, _ string) bool { return strings.Contains(purpose, "wc") })
		return fmt.Sprintf("There are %d WC rooms in the university.", n)
	}

	if strings.Contains(q, "prayer") {
		n := countWhere(rooms, func(purpose, _ string) bool { return strings.Contains(purpose, "prayer") })
		return fmt.Sprintf("There are %d prayer rooms in the university.", n)
	}

	if fuzzy.ContainsAny(q, "it", "computer") {
		n := countWhere(rooms, func(purpose, dept string) bool {
			return strings.Contains(purpose, "lab") &&
				fuzzy.ContainsAny(dept, "information technology", "computer engineering")
		})
		return fmt.Sprintf("There are %d labs shared by IT and Computer Engineering departments.", n)
	}

	for _, dept := range labDepartments {
		if !strings.Contains(q, dept) {
			continue
		}
		n := countWhere(rooms, func(purpose, d string) bool {
			return strings.Contains(purpose, "lab") && strings.Contains(d, dept)
		})
		return fmt.Sprintf("There are %d %s labs in the university.", n, dept)
	}

	n := countWhere(rooms, func(purpose, _ string) bool { return strings.Contains(purpose, "lab") })
	return fmt.Sprintf("There are %d labs in the university.", n)
}

// countWhere counts rooms whose normalized purpose and department satisfy pred
func countWhere(rooms []tables.Room, pred func(purpose, dept string) bool) int {
	n := 0
	for _, room := range rooms {
		if pred(fuzzy.Normalize(room.Purpose), fuzzy.Normalize(room.Department)) {
			n++
		}
	}
	return n
}

package resolver

import (
	"fmt"
	"strings"

	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

// StaffNotFound is the staff resolver's reply when no row scores high enough
const StaffNotFound = "Sorry, I don't have any information about this person. Please check the name."

// Staff finds the room row whose occupant or purpose best matches the
// question and reports where that person sits.
func (r *Resolver) Staff(question string) Answer {
	q := fuzzy.Normalize(question)

	room, score, ok := bestRoom(r.tables.Rooms(), func(room tables.Room) int {
		name := fuzzy.Normalize(room.Person)
		role := fuzzy.Normalize(room.Purpose)
		return max(
			fuzzy.PartialRatio(q, name),
			fuzzy.PartialRatio(q, role),
			fuzzy.TokenSetRatio(q, name+" "+role),
		)
	})
	if !ok || score < StaffThreshold {
		return Answer{Text: StaffNotFound, NotFound: true}
	}

	var text string
	if strings.Contains(q, "where") {
		text = fmt.Sprintf("%s is in room %s on the %s floor.", room.Person, room.Number, room.Floor)
	} else {
		text = fmt.Sprintf("%s is our %s, in room %s on the %s floor. %s",
			room.Person, room.Purpose, room.Number, room.Floor, room.Description)
	}

	return Answer{Text: text, Photo: r.PhotoURL(room.Photo)}
}

// bestRoom scans rooms in order and keeps the first row with the highest
// score. ok is false when no row scores above zero.
func bestRoom(rooms []tables.Room, score func(tables.Room) int) (best tables.Room, bestScore int, ok bool) {
	for _, room := range rooms {
		if s := score(room); s > bestScore {
			best, bestScore, ok = room, s, true
		}
	}
	return best, bestScore, ok
}

package resolver

import (
	"fmt"
	"strings"

	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

var visitKeywords = []string{"see", "visit", "meet", "talk to", "speak to", "go to"}

// Office is a fixed service desk a keyword routes to
type Office struct {
	Room   string
	Person string
	Job    string
}

var (
	registrationOffice = Office{Room: "G-16", Person: "Ms. Eman Nasih", Job: "registration officer"}
	accountingOffice   = Office{Room: "G-17", Person: "Mr. Muhammed Jamal", Job: "accounting officer"}
)

// serviceKeywords is checked in order; the first keyword found wins
var serviceKeywords = []struct {
	keyword string
	office  Office
}{
	{"register", registrationOffice},
	{"registration", registrationOffice},
	{"admission", registrationOffice},
	{"enroll", registrationOffice},
	{"enrol", registrationOffice},
	{"accounting", accountingOffice},
	{"pay", accountingOffice},
	{"payment", accountingOffice},
	{"fees", accountingOffice},
	{"tuition", accountingOffice},
}

// Service routes "I want to ..." questions either to a named person the
// user wants to visit or to the office handling the requested service.
func (r *Resolver) Service(question string) string {
	q := fuzzy.Normalize(question)

	if fuzzy.ContainsAny(q, visitKeywords...) {
		room, score, ok := bestRoom(r.tables.Rooms(), func(room tables.Room) int {
			return fuzzy.PartialRatio(q, fuzzy.Normalize(room.Person))
		})
		if ok && score >= VisitThreshold {
			return fmt.Sprintf("You can visit %s, %s, in room %s on the %s floor.",
				room.Person, room.Purpose, room.Number, room.Floor)
		}
	}

	for _, s := range serviceKeywords {
		if strings.Contains(q, s.keyword) {
			return fmt.Sprintf("You can go to room %s and meet %s, the %s.", s.office.Room, s.office.Person, s.office.Job)
		}
	}

	return "Could you tell me a bit more about what you want to do? I'll guide you to the right place."
}

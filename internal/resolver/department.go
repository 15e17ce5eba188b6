package resolver

import (
	"fmt"
	"strings"

	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
)

// departmentAbbreviations are expanded in this order before matching
var departmentAbbreviations = []struct {
	abbr string
	full string
}{
	{"mls", "medical laboratory science"},
	{"it", "information technology"},
	{"arch", "architecture engineering"},
	{"architecture", "architecture engineering"},
	{"dent", "dentistry"},
	{"elt", "english language teaching"},
	{"physio", "physiotherapy"},
	{"computer", "computer engineering"},
}

// ExpandAbbreviations replaces department abbreviations that appear as a
// whole word in the normalized question. Once a whole-word occurrence is
// found, every occurrence of the abbreviation is replaced, including inside
// other words.
func ExpandAbbreviations(q string) string {
	for _, a := range departmentAbbreviations {
		if strings.Contains(" "+q+" ", " "+a.abbr+" ") {
			q = strings.ReplaceAll(q, a.abbr, a.full)
		}
	}
	return q
}

// Department describes the department whose name best matches the question
func (r *Resolver) Department(question string) string {
	q := ExpandAbbreviations(fuzzy.Normalize(question))

	found := false
	bestScore := 0
	var name, description, career string
	for _, d := range r.tables.Departments() {
		if s := fuzzy.PartialRatio(q, fuzzy.Normalize(d.Name)); s > bestScore {
			found, bestScore = true, s
			name, description, career = d.Name, d.Description, d.Career
		}
	}

	if !found || bestScore < DepartmentThreshold {
		return "This department is not available in the university database. Please check the name — it might not exist."
	}

	return fmt.Sprintf("%s – %s After graduation: %s.", name, description, career)
}

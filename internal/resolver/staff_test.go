package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seanankenbruck/ti-bot/internal/tables"
)

func TestStaff(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		question string
		expected Answer
	}{
		{
			name:     "where question gives the room only",
			question: "Where is Ms. Eman Nasih?",
			expected: Answer{
				Text:  "Ms. Eman Nasih is in room G-16 on the ground floor.",
				Photo: "http://bot.test/photos/eman.jpg",
			},
		},
		{
			name:     "who question gives role and description",
			question: "Who is Mr. Muhammed Jamal?",
			expected: Answer{
				Text: "Mr. Muhammed Jamal is our Accounting Office, in room G-17 on the ground floor. He handles tuition payments.",
			},
		},
		{
			name:     "photo cell None has no photo",
			question: "who is ms shilan omer",
			expected: Answer{
				Text: "Ms. Shilan Omer is our Head of Department Office, in room 3-15 on the third floor. She leads the pharmacy department.",
			},
		},
		{
			name:     "unknown person",
			question: "Where is Dr. Ahmad?",
			expected: Answer{Text: StaffNotFound, NotFound: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Staff(tt.question))
		})
	}
}

func TestStaffNameAtEndOfQuestion(t *testing.T) {
	r := New(tables.New([]tables.Room{
		{Number: "2-05", Floor: "second", Purpose: "Lecturer Office", Person: "Ahmad Ali"},
		{Number: "G-20", Floor: "ground", Purpose: "WC"},
	}, nil, nil))

	// only the first name is asked for; it aligns with the end of the question
	answer := r.Staff("Where is Ahmad?")
	assert.False(t, answer.NotFound)
	assert.Equal(t, "Ahmad Ali is in room 2-05 on the second floor.", answer.Text)
}

func TestStaffEmptyTable(t *testing.T) {
	r := New(tables.New(nil, nil, nil))

	answer := r.Staff("who is mr rozh")
	assert.True(t, answer.NotFound)
	assert.Equal(t, StaffNotFound, answer.Text)
	assert.Empty(t, answer.Photo)
}

func TestBestRoomKeepsFirstOnTie(t *testing.T) {
	rooms := []tables.Room{{Number: "A"}, {Number: "B"}, {Number: "C"}}
	scores := map[string]int{"A": 50, "B": 80, "C": 80}

	best, score, ok := bestRoom(rooms, func(r tables.Room) int { return scores[r.Number] })
	assert.True(t, ok)
	assert.Equal(t, "B", best.Number)
	assert.Equal(t, 80, score)

	_, _, ok = bestRoom(rooms, func(tables.Room) int { return 0 })
	assert.False(t, ok)
}

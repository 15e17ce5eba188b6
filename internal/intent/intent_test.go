package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesOrder(t *testing.T) {
	rules := Rules()

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		require.NotNil(t, r.Match, r.Name)
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{
		"about_bot", "creator", "university", "service", "department",
		"room_count", "staff_where", "staff", "room", "chat",
	}, names)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected Label
		rule     string
	}{
		{name: "about the bot", question: "Who are you?", expected: AboutBot, rule: "about_bot"},
		{name: "what is the bot", question: "What is TI Bot?", expected: AboutBot, rule: "about_bot"},
		{name: "creator", question: "Who made you?", expected: Creator, rule: "creator"},
		{name: "founder wins over who is", question: "Who is your founder?", expected: Creator, rule: "creator"},
		{name: "university", question: "Tell me about TIU", expected: University, rule: "university"},
		{name: "service", question: "I want to pay tuition", expected: Service, rule: "service"},
		{name: "service wins over staff", question: "I need to see Mr. Rozh", expected: Service, rule: "service"},
		{name: "department", question: "Tell me about the Computer Engineering department", expected: Department, rule: "department"},
		{name: "department wins over who is", question: "Who is the head of the computer department?", expected: Department, rule: "department"},
		{name: "room count", question: "How many WC rooms are there?", expected: Room, rule: "room_count"},
		{name: "count wins over staff", question: "How many lecturers are there?", expected: Room, rule: "room_count"},
		{name: "staff with title and where", question: "Where is Ms. Eman Nasih?", expected: Staff, rule: "staff_where"},
		{name: "staff where wins over office cue", question: "Where is the professor's office?", expected: Staff, rule: "staff_where"},
		{name: "staff who is", question: "Who is Mr. Muhammed Jamal?", expected: Staff, rule: "staff"},
		{name: "room number", question: "What is in room G-20?", expected: Room, rule: "room"},
		{name: "room cue wins over chat", question: "Which room is the registration office?", expected: Room, rule: "room"},
		{name: "greeting", question: "Hello there", expected: Chat, rule: "chat"},
		{name: "joke", question: "Tell me a joke", expected: Chat, rule: "chat"},
		{name: "hi inside another word", question: "Is this open?", expected: Chat, rule: "chat"},
		{name: "general default", question: "When does the library open?", expected: General, rule: "default"},
		{name: "empty question", question: "", expected: General, rule: "default"},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, rule := c.ClassifyWithRule(tt.question)
			assert.Equal(t, tt.expected, label)
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, tt.expected, c.Classify(tt.question))
		})
	}
}

func TestClassifyIsTotalAndDeterministic(t *testing.T) {
	valid := make(map[Label]bool)
	for _, l := range Labels() {
		valid[l] = true
	}

	c := NewClassifier()
	inputs := []string{
		"", "   ", "?!?", "G-16", "ŞÊRWAN", "123 456", "tell me everything",
		"where", "mr", "how many", "qwertyuiop", "Where can I find the library?",
	}
	for _, in := range inputs {
		first := c.Classify(in)
		assert.True(t, valid[first], "unexpected label %q for %q", first, in)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, c.Classify(in), "classification of %q changed", in)
		}
	}
}

func TestClassifyNormalizesCaseAndAccents(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, c.Classify("who made you"), c.Classify("WHO MADE YOU!!"))
	assert.Equal(t, University, c.Classify("Tíshk"))
}

// Package intent classifies a free-text question into one of the chatbot's
// closed set of intents using ordered keyword rules.
package intent

import (
	"strings"

	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
)

// Label is the classified intent of a question
type Label string

const (
	AboutBot   Label = "about_bot"
	Creator    Label = "creator"
	University Label = "university"
	Service    Label = "service"
	Department Label = "department"
	Room       Label = "room"
	Staff      Label = "staff"
	Chat       Label = "chat"
	General    Label = "general"
)

// Labels lists every label Classify can return
func Labels() []Label {
	return []Label{AboutBot, Creator, University, Service, Department, Room, Staff, Chat, General}
}

// Rule maps a predicate over the normalized question to a label
type Rule struct {
	Name  string
	Label Label
	Match func(q string) bool
}

var staffTitles = []string{"mr", "ms", "mrs", "dr", "professor", "lecturer"}

// Rules returns the ordered rule list. The first matching rule wins; a
// question matching nothing is General. Matching is plain substring
// containment, so "hi" also matches "which" and "this".
func Rules() []Rule {
	return []Rule{
		{Name: "about_bot", Label: AboutBot, Match: containsAny(
			"who are you", "what are you", "why were you made", "about ti bot",
			"what is ti bot", "tell me about yourself", "information about you",
		)},
		{Name: "creator", Label: Creator, Match: containsAny(
			"who built you", "who made you", "who created you", "who developed you",
			"your developer", "your creator", "why were you built", "why did they build you",
			"who is your founder", "founder",
		)},
		{Name: "university", Label: University, Match: containsAny(
			"tiu", "tishk", "tishk international university", "tiu-sulaimani", "tiu sulaimani", "university info",
		)},
		{Name: "service", Label: Service, Match: containsAny(
			"i want to", "i wanna", "where can i", "i need to", "i need", "i want",
		)},
		{Name: "department", Label: Department, Match: containsAny("department", "major", "study", "graduate")},
		{Name: "room_count", Label: Room, Match: containsAny("how many")},
		{Name: "staff_where", Label: Staff, Match: func(q string) bool {
			return fuzzy.ContainsAny(q, staffTitles...) && strings.Contains(q, "where")
		}},
		{Name: "staff", Label: Staff, Match: containsAny("who is", "whos", "mr", "ms", "lecturer", "professor")},
		{Name: "room", Label: Room, Match: containsAny("g-", "room", "office", "what is", "where is")},
		{Name: "chat", Label: Chat, Match: containsAny("hi", "hello", "hey", "how are you", "joke")},
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(q string) bool {
		return fuzzy.ContainsAny(q, subs...)
	}
}

// Classifier assigns a Label to a question
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over the default rule list
func NewClassifier() *Classifier {
	return &Classifier{rules: Rules()}
}

// Classify normalizes the question and returns the label of the first
// matching rule. It is total: every input gets exactly one label.
func (c *Classifier) Classify(question string) Label {
	label, _ := c.ClassifyWithRule(question)
	return label
}

// ClassifyWithRule is Classify that also reports the name of the rule that
// fired, or "default" when none did.
func (c *Classifier) ClassifyWithRule(question string) (Label, string) {
	q := fuzzy.Normalize(question)
	for _, rule := range c.rules {
		if rule.Match(q) {
			return rule.Label, rule.Name
		}
	}
	return General, "default"
}

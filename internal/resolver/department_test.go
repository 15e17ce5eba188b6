package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandAbbreviations(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"mls department", "medical laboratory science department"},
		{"tell me about the it major", "tell me about the information technology major"},
		{"what is the computer department", "what is the computer engineering department"},
		{"dent", "dentistry"},
		{"mlsx department", "mlsx department"},
		{"pharmacy", "pharmacy"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandAbbreviations(tt.in))
		})
	}
}

func TestDepartment(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		question string
		expected string
	}{
		{
			name:     "abbreviation",
			question: "Tell me about the MLS department",
			expected: "Medical Laboratory Science – Studies clinical lab testing. After graduation: lab technologist.",
		},
		{
			name:     "full name",
			question: "What can I do after graduating from Pharmacy?",
			expected: "Pharmacy – Studies medicines. After graduation: pharmacist.",
		},
		{
			name:     "computer expands to computer engineering",
			question: "computer department",
			expected: "Computer Engineering – Designs hardware and software systems. After graduation: software engineer or network engineer.",
		},
		{
			name:     "unknown department",
			question: "zoology department",
			expected: "This department is not available in the university database. Please check the name — it might not exist.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Department(tt.question))
		})
	}
}

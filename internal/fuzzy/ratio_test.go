package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{name: "identical", a: "computer lab", b: "computer lab", expected: 100},
		{name: "one edit", a: "abcd", b: "abce", expected: 75},
		{name: "half rounds to even", a: "abcde", b: "abcdexxxxxx", expected: 62},
		{name: "nothing shared", a: "abc", b: "xyz", expected: 0},
		{name: "empty left", a: "", b: "abc", expected: 0},
		{name: "empty right", a: "abc", b: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ratio(tt.a, tt.b))
		})
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{name: "substring", a: "where is ms eman nasih", b: "ms eman nasih", expected: 100},
		{name: "substring either order", a: "eman", b: "ms eman nasih", expected: 100},
		{name: "best window", a: "abcd", b: "xxabce", expected: 75},
		{name: "no overlap", a: "xyz", b: "abcdef", expected: 0},
		{name: "empty", a: "abc", b: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PartialRatio(tt.a, tt.b))
		})
	}
}

func TestPartialRatioNameAtEdgeOfQuestion(t *testing.T) {
	// the name's first word is the question's last word
	assert.Equal(t, 71, PartialRatio("where is ahmad", "ahmad ali"))
	assert.Equal(t, 71, PartialRatio("ahmad ali", "where is ahmad"))

	// and the name's last word opens the question
	assert.Equal(t, 71, PartialRatio("ali ahmad", "ahmad is in which room"))
}

func TestPartialRatioShortFieldDoesNotMatchByPrefix(t *testing.T) {
	// a one-letter overlap with a two-letter field must stay below any threshold
	assert.Less(t, PartialRatio("where is dr ahmad", "wc"), 60)
}

func TestTokenSetRatio(t *testing.T) {
	assert.Equal(t, 100, TokenSetRatio("computer engineering", "engineering computer"))
	assert.Equal(t, 100, TokenSetRatio("eman nasih", "ms eman nasih registration officer"))
	assert.Equal(t, 100, TokenSetRatio("lab lab lab", "lab"))
	assert.Less(t, TokenSetRatio("a b", "c d"), 50)
	assert.Equal(t, 0, TokenSetRatio("", "anything"))
	assert.Equal(t, 0, TokenSetRatio("?!", "anything"))
}

func TestScoresAreBounded(t *testing.T) {
	pairs := [][2]string{
		{"how many labs", "computer lab"},
		{"g-12", "g12"},
		{"who is the dean", "dean of engineering"},
		{"x", "y"},
	}
	for _, p := range pairs {
		for _, score := range []int{Ratio(p[0], p[1]), PartialRatio(p[0], p[1]), TokenSetRatio(p[0], p[1])} {
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

package resolver

import (
	"strings"

	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
)

var (
	greetingReplies = []string{
		"Hello! 😊 How can I assist you today?",
		"Hi there! Hope you're doing great 🌟",
		"Hey! What would you like to explore at TIU?",
	}
	jokeReplies = []string{
		"Why did the computer go to therapy? Because it had too many bytes!",
		"Why don't robots panic? Because they have steel nerves!",
		"What's a computer's favorite snack? Microchips!",
	}
)

const (
	howAreYouReply = "I'm doing great and ready to help! How about you? 😄"
	chatFiller     = "I'm always here if you want to talk or ask about the university!"
)

// Chat answers small talk: greetings, "how are you" and jokes
func (r *Resolver) Chat(question string) string {
	q := fuzzy.Normalize(question)

	switch {
	case fuzzy.ContainsAny(q, "hi", "hello", "hey"):
		return r.pick(greetingReplies)
	case strings.Contains(q, "how are you"):
		return howAreYouReply
	case strings.Contains(q, "joke"):
		return r.pick(jokeReplies)
	default:
		return chatFiller
	}
}

func (r *Resolver) pick(replies []string) string {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return replies[r.rng.Intn(len(replies))]
}

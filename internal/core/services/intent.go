package services

import (
	"strings"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/logger"
)

// DefaultIntentThreshold is the maximum normalized edit distance for a
// trigger to count as a match. 0.4 tolerates short typos like "hlo" for
// "hello" without firing on unrelated short messages.
const DefaultIntentThreshold = 0.4

// DefaultIntents returns the fixed intent table. Table order matters:
// when two intents score equally, the first inserted wins.
func DefaultIntents() []domain.Intent {
	return []domain.Intent{
		{
			Name:     "greeting",
			Triggers: []string{"hi", "hello", "hey", "hlo", "greetings"},
			Reply:    "Hi! I'm Sam. How can I help you with our product guides today?",
		},
		{
			Name:     "farewell",
			Triggers: []string{"bye", "goodbye", "exit", "see ya", "tata"},
			Reply:    "Goodbye! Feel free to reach out if you have more questions.",
		},
		{
			Name:     "thanks",
			Triggers: []string{"thanks", "thank you", "thx"},
			Reply:    "You're very welcome! Is there anything else you need?",
		},
	}
}

// IntentMatcher recognises a small fixed set of canned exchanges using
// approximate string matching. It runs before any provider call and is
// the zero-cost fast path of the pipeline.
type IntentMatcher struct {
	intents   []domain.Intent
	threshold float64
}

// NewIntentMatcher creates a matcher over the given intent table.
// A threshold <= 0 falls back to DefaultIntentThreshold.
func NewIntentMatcher(intents []domain.Intent, threshold float64) *IntentMatcher {
	if threshold <= 0 {
		threshold = DefaultIntentThreshold
	}
	return &IntentMatcher{intents: intents, threshold: threshold}
}

// Match checks the normalized message against every trigger phrase and
// returns the best-scoring intent, or nil when nothing clears the
// threshold. Ties keep the earlier table entry.
func (m *IntentMatcher) Match(message string) *domain.Intent {
	message = strings.ToLower(strings.TrimSpace(message))
	if message == "" {
		return nil
	}

	best := -1
	bestScore := m.threshold + 1
	for i := range m.intents {
		for _, trigger := range m.intents[i].Triggers {
			// Strictly-better comparison keeps the earlier table
			// entry on ties.
			score := normalizedDistance(message, trigger)
			if score <= m.threshold && score < bestScore {
				best = i
				bestScore = score
			}
		}
	}

	if best < 0 {
		return nil
	}
	logger.Debug("Intent match: %s (score %.2f)", m.intents[best].Name, bestScore)
	return &m.intents[best]
}

// normalizedDistance is the Levenshtein distance between two strings
// divided by the length of the longer one, so 0 is identical and 1 is
// completely dissimilar.
func normalizedDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein(a, b)) / float64(longest)
}

// levenshtein computes the edit distance between two strings using the
// standard two-row dynamic programming formulation.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

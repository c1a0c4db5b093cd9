package services

import (
	"math"
	"strings"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/logger"
)

// DefaultMinScore is the relevance guardrail: below it the ranker reports
// no usable match and the pipeline refuses instead of generating. This is
// the sole defense against ungrounded answers.
const DefaultMinScore = 0.22

// OverrideRule is a deterministic score rewrite applied once after
// ranking. When the lowercased query contains QueryContains and the
// best document's content contains DocContains, the score is forced to
// Score regardless of the true cosine similarity.
type OverrideRule struct {
	QueryContains string
	DocContains   string
	Score         float64
}

// DefaultOverrideRules returns the single shipped rule: users asking
// about returns are routed to the refund document, whose wording is
// otherwise a poor cosine match for "return".
func DefaultOverrideRules() []OverrideRule {
	return []OverrideRule{
		{QueryContains: "return", DocContains: "refund", Score: 0.5},
	}
}

// Ranker selects the best-matching knowledge document for a query vector
// and applies the override rules and the relevance guardrail.
type Ranker struct {
	rules    []OverrideRule
	minScore float64
}

// NewRanker creates a ranker. A minScore <= 0 falls back to
// DefaultMinScore.
func NewRanker(rules []OverrideRule, minScore float64) *Ranker {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Ranker{rules: rules, minScore: minScore}
}

// MinScore returns the guardrail threshold.
func (r *Ranker) MinScore() float64 {
	return r.minScore
}

// Rank scores the query vector against every document and returns the
// best match. Ties keep the first document encountered, so results are
// deterministic in knowledge-base load order.
//
// When the final score (after overrides) is below the guardrail, the
// returned MatchResult has a nil Document; the caller must refuse and
// make no generation call.
func (r *Ranker) Rank(query []float32, queryText string, docs []domain.Document) domain.MatchResult {
	var best *domain.Document
	bestScore := 0.0

	for i := range docs {
		// Strictly-greater comparison keeps the first document on
		// ties; the first document is the best match when every
		// score is zero.
		score := cosineSimilarity(query, docs[i].Embedding)
		if best == nil || score > bestScore {
			best = &docs[i]
			bestScore = score
		}
	}

	bestScore = r.applyOverrides(strings.ToLower(queryText), best, bestScore)

	if best == nil || bestScore < r.minScore {
		logger.Debug("Guardrail: best score %.3f below %.3f, no usable match", bestScore, r.minScore)
		return domain.MatchResult{Document: nil, Score: bestScore}
	}

	logger.Debug("Best match score %.3f", bestScore)
	return domain.MatchResult{Document: best, Score: bestScore}
}

// applyOverrides evaluates the rules in order and applies the first that
// matches. The rewrite is idempotent: it sets an absolute score, so
// applying it once per query is guaranteed by construction.
func (r *Ranker) applyOverrides(query string, doc *domain.Document, score float64) float64 {
	if doc == nil {
		return score
	}
	content := strings.ToLower(doc.Content)
	for _, rule := range r.rules {
		if strings.Contains(query, rule.QueryContains) && strings.Contains(content, rule.DocContains) {
			logger.Debug("Override rule %q/%q forced score %.2f (was %.3f)",
				rule.QueryContains, rule.DocContains, rule.Score, score)
			return rule.Score
		}
	}
	return score
}

// cosineSimilarity is the dot product of the two vectors divided by the
// product of their magnitudes, defined as 0 when either magnitude is 0.
// Vectors of different lengths are compared over the shorter prefix,
// which only arises when an embedding degraded to empty.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		magA += float64(v) * float64(v)
	}
	for _, v := range b {
		magB += float64(v) * float64(v)
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

package router

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/praka2hb/synergi/plugin/ai/signal"
)

// SignalKind labels one contribution to a cluster score.
type SignalKind string

const (
	SignalPattern   SignalKind = "pattern"
	SignalPhrase    SignalKind = "phrase"
	SignalFuzzy     SignalKind = "fuzzy_keyword"
	SignalSubstring SignalKind = "substring"
)

// Per-hit multipliers, applied on top of the cluster weight. Patterns carry
// the most weight because they encode structural intent ("will it rain"),
// substring containment the least since it only catches compound words that
// tokenization misses.
const (
	patternMultiplier   = 3.0
	phraseMultiplier    = 2.5
	fuzzyMultiplier     = 1.5
	substringMultiplier = 0.5
)

// Signal is one scored match, kept for explainability.
type Signal struct {
	Kind   SignalKind `json:"kind"`
	Value  string     `json:"value"`
	Weight float64    `json:"weight"`
}

// AgentScore is the composite score of one cluster against a message.
type AgentScore struct {
	Agent   AgentType `json:"agent"`
	Score   float64   `json:"score"`
	Signals []Signal  `json:"signals"`
}

// RuleClassifier scores a message against every intent cluster using the
// lexical signal engine. It is fully deterministic and needs no network.
type RuleClassifier struct {
	clusters []IntentCluster
}

// NewRuleClassifier creates a rule classifier over the default clusters.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{clusters: defaultClusters()}
}

// Score evaluates every cluster and returns the per-agent scores in cluster
// declaration order, together with the winner index.
func (c *RuleClassifier) Score(input string) []AgentScore {
	tokens := signal.Tokenize(input)
	filtered := signal.FilterStopWords(tokens)
	grams := append(signal.Bigrams(tokens), signal.Trigrams(tokens)...)
	lower := strings.ToLower(input)

	scores := make([]AgentScore, 0, len(c.clusters))
	for _, cluster := range c.clusters {
		scores = append(scores, c.scoreCluster(cluster, lower, filtered, grams))
	}
	return scores
}

func (c *RuleClassifier) scoreCluster(cluster IntentCluster, lower string, filtered, grams []string) AgentScore {
	score := AgentScore{Agent: cluster.Agent}
	add := func(kind SignalKind, value string, multiplier float64) {
		weight := multiplier * cluster.Weight
		score.Score += weight
		score.Signals = append(score.Signals, Signal{Kind: kind, Value: value, Weight: weight})
	}

	for _, pattern := range cluster.Patterns {
		if pattern.MatchString(lower) {
			add(SignalPattern, pattern.String(), patternMultiplier)
		}
	}

	gramSet := make(map[string]struct{}, len(grams))
	for _, g := range grams {
		gramSet[g] = struct{}{}
	}
	for _, phrase := range cluster.Phrases {
		if _, ok := gramSet[phrase]; ok {
			add(SignalPhrase, phrase, phraseMultiplier)
		}
	}

	// One credit per keyword regardless of how many tokens matched it.
	credited := make(map[string]struct{}, len(cluster.Keywords))
	for _, keyword := range cluster.Keywords {
		for _, token := range filtered {
			if signal.FuzzyMatch(token, keyword) {
				add(SignalFuzzy, keyword, fuzzyMultiplier)
				credited[keyword] = struct{}{}
				break
			}
		}
	}

	// Substring containment catches compounds like "weatherman" that
	// tokenization leaves as a single unmatched token.
	for _, keyword := range cluster.Keywords {
		if len(keyword) < 5 {
			continue
		}
		if _, ok := credited[keyword]; ok {
			continue
		}
		if strings.Contains(lower, keyword) {
			add(SignalSubstring, keyword, substringMultiplier)
		}
	}

	return score
}

// Classify implements Classifier. The winner is the strictly highest total
// score; on a tie the first cluster evaluated wins.
func (c *RuleClassifier) Classify(_ context.Context, input string, _ []string) *RoutingDecision {
	scores := c.Score(input)

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	if best.Score == 0 {
		return &RoutingDecision{
			Agent:      AgentGeneral,
			Confidence: 0.3,
			Reason:     "no lexical signal matched",
		}
	}

	decision := &RoutingDecision{
		Agent:      best.Agent,
		Confidence: normalizeConfidence(best.Score),
		Reason:     summarizeSignals(best.Signals),
	}
	if best.Agent == AgentWeather {
		decision.Location = ExtractLocation(input)
	}
	slog.Debug("intent classified by rule engine",
		"agent", decision.Agent,
		"score", best.Score,
		"signals", len(best.Signals))
	return decision
}

// normalizeConfidence maps a raw score into the 0..1 confidence range. A
// single pattern hit (3.0) already lands at high confidence.
func normalizeConfidence(score float64) float64 {
	confidence := score / 6.0
	if confidence > 0.95 {
		return 0.95
	}
	if confidence < 0.1 {
		return 0.1
	}
	return confidence
}

func summarizeSignals(signals []Signal) string {
	counts := map[SignalKind]int{}
	for _, s := range signals {
		counts[s.Kind]++
	}
	parts := make([]string, 0, len(counts))
	for _, kind := range []SignalKind{SignalPattern, SignalPhrase, SignalFuzzy, SignalSubstring} {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	return "matched " + strings.Join(parts, ", ")
}

// locationPattern captures a trailing place name after a locative
// preposition, e.g. "weather in New Delhi".
var locationPattern = regexp.MustCompile(`(?i)\b(?:in|at|for|near)\s+([a-z][a-z\s\-']{1,40})$`)

// ExtractLocation pulls a probable place name out of a weather question.
// Returns "" when nothing usable is found.
func ExtractLocation(input string) string {
	input = strings.TrimRight(strings.TrimSpace(input), "?!. ")
	match := locationPattern.FindStringSubmatch(input)
	if match == nil {
		return ""
	}
	location := strings.TrimSpace(match[1])
	if location == "" {
		return ""
	}
	return titleCase(location)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

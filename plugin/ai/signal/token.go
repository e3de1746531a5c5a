// Package signal provides the lexical analysis primitives used by intent
// classification: tokenization, stop-word filtering, edit-distance fuzzy
// matching, n-gram extraction and emotion detection. Everything in this
// package is a pure function over strings.
package signal

import (
	"strings"
	"unicode"
)

// curlyQuoteReplacer normalizes typographic quotes before tokenization so
// that "what's" and "what’s" produce the same tokens.
var curlyQuoteReplacer = strings.NewReplacer(
	"‘", "'", // ‘
	"’", "'", // ’
	"“", `"`, // “
	"”", `"`, // ”
)

// Tokenize splits text into lowercase word tokens. Punctuation is stripped
// except hyphens and apostrophes that sit inside a word, so "check-in" and
// "what's" survive as single tokens.
func Tokenize(text string) []string {
	text = strings.ToLower(curlyQuoteReplacer.Replace(text))

	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		// Interior hyphens/apostrophes are kept, leading/trailing ones are not.
		token := strings.Trim(b.String(), "-'")
		if token != "" {
			tokens = append(tokens, token)
		}
		b.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '\'':
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// stopWords are excluded before fuzzy matching is attempted. Short
// high-frequency words produce spurious edit-distance-1 collisions with
// domain keywords (e.g. "ran" vs "rain", "cod" vs "code"), so fuzzy matching
// must never run against them.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// determiners and pronouns
		"a", "an", "the", "this", "that", "these", "those", "some", "any",
		"i", "me", "my", "mine", "you", "your", "yours", "he", "him", "his",
		"she", "her", "hers", "it", "its", "we", "us", "our", "ours",
		"they", "them", "their", "theirs", "who", "whom", "whose",
		// prepositions and conjunctions
		"in", "on", "at", "to", "of", "for", "from", "with", "without",
		"about", "into", "onto", "over", "under", "by", "as", "and", "or",
		"but", "nor", "so", "if", "then", "than", "because", "while",
		// auxiliaries and modals
		"is", "am", "are", "was", "were", "be", "been", "being",
		"do", "does", "did", "have", "has", "had",
		"will", "would", "shall", "should", "can", "could", "may", "might",
		"must", "not", "no", "yes",
		// question words and fillers
		"what", "when", "where", "why", "how", "which",
		"there", "here", "just", "very", "too", "also", "please",
		// known fuzzy false positives against domain keywords
		"ran", "cod", "new", "son", "wet", "ode", "ear",
	} {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether token belongs to the fixed stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// FilterStopWords returns the tokens that are not stop-words, preserving
// order.
func FilterStopWords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !IsStopWord(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Bigrams returns the contiguous two-token joins of tokens, space separated.
// The n-grams run over raw tokens (not stop-word filtered) because phrases
// like "what is the weather" contain stop-words by construction.
func Bigrams(tokens []string) []string {
	return ngrams(tokens, 2)
}

// Trigrams returns the contiguous three-token joins of tokens.
func Trigrams(tokens []string) []string {
	return ngrams(tokens, 3)
}

func ngrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

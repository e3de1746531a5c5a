package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercase and split",
			input:    "Weather In Mumbai",
			expected: []string{"weather", "in", "mumbai"},
		},
		{
			name:     "punctuation stripped",
			input:    "will it rain, today?!",
			expected: []string{"will", "it", "rain", "today"},
		},
		{
			name:     "interior hyphen and apostrophe kept",
			input:    "what's the check-in time",
			expected: []string{"what's", "the", "check-in", "time"},
		},
		{
			name:     "curly quotes normalized",
			input:    "what’s new",
			expected: []string{"what's", "new"},
		},
		{
			name:     "leading and trailing hyphens dropped",
			input:    "-dash- 'quote'",
			expected: []string{"dash", "quote"},
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestFilterStopWords(t *testing.T) {
	tokens := Tokenize("what is the weather in Mumbai")
	filtered := FilterStopWords(tokens)
	assert.Equal(t, []string{"weather", "mumbai"}, filtered)
}

func TestNgrams(t *testing.T) {
	tokens := []string{"will", "it", "rain", "today"}

	assert.Equal(t, []string{"will it", "it rain", "rain today"}, Bigrams(tokens))
	assert.Equal(t, []string{"will it rain", "it rain today"}, Trigrams(tokens))
	assert.Nil(t, Trigrams([]string{"too", "short"}))
	assert.Nil(t, Bigrams(nil))
}

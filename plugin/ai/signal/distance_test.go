package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "identical", a: "weather", b: "weather", expected: 0},
		{name: "empty left", a: "", b: "abc", expected: 3},
		{name: "empty right", a: "abc", b: "", expected: 3},
		{name: "single substitution", a: "cat", b: "bat", expected: 1},
		{name: "single deletion", a: "wether", b: "weather", expected: 1},
		{name: "classic kitten", a: "kitten", b: "sitting", expected: 3},
		{name: "unrelated", a: "cat", b: "dog", expected: 3},
		{name: "unicode runes", a: "café", b: "cafe", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EditDistance(tt.a, tt.b))
		})
	}
}

func TestEditDistance_MetricProperties(t *testing.T) {
	samples := []string{"", "a", "ab", "weather", "wether", "search", "serach", "code", "general"}

	for _, a := range samples {
		assert.Zero(t, EditDistance(a, a), "d(a,a) for %q", a)
		for _, b := range samples {
			dab := EditDistance(a, b)
			assert.Equal(t, dab, EditDistance(b, a), "symmetry for %q/%q", a, b)
			for _, c := range samples {
				assert.LessOrEqual(t, EditDistance(a, c), dab+EditDistance(b, c),
					"triangle inequality for %q/%q/%q", a, b, c)
			}
		}
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		target   string
		expected bool
	}{
		{name: "typo within tolerance", word: "wether", target: "weather", expected: true},
		{name: "exact", word: "weather", target: "weather", expected: true},
		{name: "unrelated", word: "cat", target: "dog", expected: false},
		{name: "short target requires exact", word: "a", target: "an", expected: false},
		{name: "short target exact ok", word: "sun", target: "sun", expected: true},
		{name: "medium target one edit", word: "rany", target: "rain", expected: false},
		{name: "medium target one insert", word: "rains", target: "rain", expected: true},
		{name: "length gap rejected early", word: "w", target: "weather", expected: false},
		{name: "long target three edits", word: "temperatur", target: "temperature", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FuzzyMatch(tt.word, tt.target))
		})
	}
}

func TestFuzzyTolerance(t *testing.T) {
	tests := []struct {
		length   int
		expected int
	}{
		{1, 0}, {3, 0}, {4, 1}, {5, 1}, {6, 2}, {8, 2}, {9, 3}, {15, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FuzzyTolerance(tt.length), "length %d", tt.length)
	}
}

func BenchmarkEditDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		EditDistance("temperature", "temprature")
	}
}

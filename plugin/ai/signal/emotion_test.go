package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEmotion(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedEmotion Emotion
		minIntensity    float64
	}{
		{
			name:            "neutral default",
			input:           "list my conversations",
			expectedEmotion: EmotionNeutral,
			minIntensity:    0,
		},
		{
			name:            "frustration single cue",
			input:           "this code is broken",
			expectedEmotion: EmotionFrustration,
			minIntensity:    0.6,
		},
		{
			name:            "frustration stacks with extra cues",
			input:           "it's broken again, same error, why won't it run",
			expectedEmotion: EmotionFrustration,
			minIntensity:    0.75,
		},
		{
			name:            "urgency",
			input:           "I need this fixed asap, deadline is tonight",
			expectedEmotion: EmotionUrgency,
			minIntensity:    0.6,
		},
		{
			name:            "gratitude",
			input:           "thanks, that was perfect!",
			expectedEmotion: EmotionGratitude,
			minIntensity:    0.5,
		},
		{
			name:            "greeting",
			input:           "hey, good morning",
			expectedEmotion: EmotionGreeting,
			minIntensity:    0.5,
		},
		{
			name:            "curiosity",
			input:           "I'm curious how does this work",
			expectedEmotion: EmotionCuriosity,
			minIntensity:    0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectEmotion(tt.input)
			assert.Equal(t, tt.expectedEmotion, result.Emotion)
			assert.GreaterOrEqual(t, result.Intensity, tt.minIntensity)
			assert.LessOrEqual(t, result.Intensity, 1.0)
		})
	}
}

func TestDetectEmotion_IntensityCap(t *testing.T) {
	// Every frustration cue at once must still cap at 1.0.
	input := "it doesn't work, still the same error, broken and useless, why won't it start, so frustrating"
	result := DetectEmotion(input)
	assert.Equal(t, EmotionFrustration, result.Emotion)
	assert.LessOrEqual(t, result.Intensity, 1.0)
}

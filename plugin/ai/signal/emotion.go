package signal

import "regexp"

// Emotion is a coarse affect label detected from a user message.
type Emotion string

const (
	EmotionFrustration Emotion = "frustration"
	EmotionUrgency     Emotion = "urgency"
	EmotionCuriosity   Emotion = "curiosity"
	EmotionGratitude   Emotion = "gratitude"
	EmotionGreeting    Emotion = "greeting"
	EmotionNeutral     Emotion = "neutral"
)

// EmotionResult is the outcome of DetectEmotion.
type EmotionResult struct {
	Emotion   Emotion `json:"emotion"`
	Intensity float64 `json:"intensity"` // 0..1
}

// intensityIncrement is added per matching cue beyond the first.
const intensityIncrement = 0.15

type emotionProfile struct {
	emotion       Emotion
	baseIntensity float64
	cues          []*regexp.Regexp
}

// emotionProfiles are evaluated in declared order; on an intensity tie the
// earlier profile wins.
var emotionProfiles = []emotionProfile{
	{
		emotion:       EmotionFrustration,
		baseIntensity: 0.6,
		cues: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(not work(ing)?|doesn'?t work|broken|stuck|fail(ed|ing)?)\b`),
			regexp.MustCompile(`(?i)\b(annoying|frustrat(ed|ing)|ridiculous|useless)\b`),
			regexp.MustCompile(`(?i)\b(again|still)\b.*\b(wrong|error|issue|problem)\b`),
			regexp.MustCompile(`(?i)\bwhy (won'?t|can'?t|isn'?t)\b`),
		},
	},
	{
		emotion:       EmotionUrgency,
		baseIntensity: 0.6,
		cues: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(urgent(ly)?|asap|immediately|right now|right away)\b`),
			regexp.MustCompile(`(?i)\b(hurry|quick(ly)?|deadline|emergency)\b`),
			regexp.MustCompile(`(?i)\bneed (this|it|help) (now|today|fast)\b`),
		},
	},
	{
		emotion:       EmotionCuriosity,
		baseIntensity: 0.4,
		cues: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(curious|wonder(ing)?|interest(ed|ing))\b`),
			regexp.MustCompile(`(?i)\bhow (does|do|did) .+ work\b`),
			regexp.MustCompile(`(?i)\bwhat (if|happens|exactly)\b`),
			regexp.MustCompile(`(?i)\btell me more\b`),
		},
	},
	{
		emotion:       EmotionGratitude,
		baseIntensity: 0.5,
		cues: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(thanks?|thank you|thx)\b`),
			regexp.MustCompile(`(?i)\b(appreciate|grateful)\b`),
			regexp.MustCompile(`(?i)\b(awesome|great|perfect|amazing)[.! ]*$`),
		},
	},
	{
		emotion:       EmotionGreeting,
		baseIntensity: 0.5,
		cues: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(hi|hey|hello|yo|howdy)\b`),
			regexp.MustCompile(`(?i)\bgood (morning|afternoon|evening)\b`),
			regexp.MustCompile(`(?i)\bhow are you\b`),
		},
	},
}

// DetectEmotion scans text against each emotion's cue list. Intensity starts
// at the emotion's base and grows by a fixed increment for every additional
// matching cue, capped at 1.0. The highest-intensity matching emotion wins;
// with nothing matched the result is neutral at intensity 0.
func DetectEmotion(text string) EmotionResult {
	best := EmotionResult{Emotion: EmotionNeutral, Intensity: 0}
	for _, profile := range emotionProfiles {
		matches := 0
		for _, cue := range profile.cues {
			if cue.MatchString(text) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		intensity := profile.baseIntensity + float64(matches-1)*intensityIncrement
		if intensity > 1.0 {
			intensity = 1.0
		}
		if intensity > best.Intensity {
			best = EmotionResult{Emotion: profile.emotion, Intensity: intensity}
		}
	}
	return best
}

package router

import "regexp"

// IntentCluster is the declarative lexical signature of one agent: keyword,
// phrase and pattern sets plus a relative weight. Cluster membership is
// independent; a keyword may appear in several clusters.
type IntentCluster struct {
	Agent    AgentType
	Keywords []string
	Phrases  []string
	Patterns []*regexp.Regexp
	// Weight scales every signal from this cluster. Must be positive.
	Weight float64
}

// defaultClusters are evaluated in declared order; a score tie goes to the
// earlier cluster. The general cluster carries a slightly lower weight so it
// only wins as a genuine fallback.
func defaultClusters() []IntentCluster {
	return []IntentCluster{
		{
			Agent:  AgentWeather,
			Weight: 1.0,
			Keywords: []string{
				"weather", "temperature", "forecast", "rain", "raining",
				"snow", "snowing", "sunny", "cloudy", "humidity", "humid",
				"wind", "windy", "storm", "umbrella", "raincoat", "climate",
				"sunrise", "sunset", "degrees", "celsius", "fahrenheit",
			},
			Phrases: []string{
				"weather in", "weather like", "will it rain", "is it raining",
				"how hot is", "how cold is", "need an umbrella",
				"need a jacket", "chance of rain",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bwill it (rain|snow|storm)\b`),
				regexp.MustCompile(`(?i)\bis it (raining|snowing|sunny|cloudy|hot|cold) (in|at|outside)\b`),
				regexp.MustCompile(`(?i)\b(weather|temperature|forecast)\b.*\b(in|at|for)\b`),
				regexp.MustCompile(`(?i)\bdo i need (an? )?(umbrella|jacket|raincoat)\b`),
				regexp.MustCompile(`(?i)\bhow (hot|cold|humid|windy) is it\b`),
			},
		},
		{
			Agent:  AgentWebSearch,
			Weight: 1.0,
			Keywords: []string{
				"search", "news", "latest", "headlines", "trending",
				"happening", "price", "stock", "score", "results",
				"election", "release", "announcement", "update",
			},
			Phrases: []string{
				"search for", "look up", "latest news", "what happened",
				"who won", "right now", "stock price", "in the news",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(latest|current|today'?s|recent|breaking) (news|price|score|headlines|results|updates?)\b`),
				regexp.MustCompile(`(?i)\bwho won\b`),
				regexp.MustCompile(`(?i)\bsearch (for|the web|online)\b`),
				regexp.MustCompile(`(?i)\blook(ing)? up\b`),
				regexp.MustCompile(`(?i)\bwhat('?s| is) happening\b`),
			},
		},
		{
			Agent:  AgentCodeAssistant,
			Weight: 1.0,
			Keywords: []string{
				"code", "program", "script", "function", "debug", "compile",
				"execute", "python", "javascript", "typescript", "golang",
				"java", "rust", "html", "css", "react", "component",
				"snippet", "algorithm", "website", "webpage", "button",
				"form", "frontend",
			},
			Phrases: []string{
				"write a function", "run this code", "execute this",
				"fix this bug", "build a website", "landing page",
				"create a component", "write code", "code review",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(write|fix|debug|run|execute|refactor|review) (some |the |this |my |a )?(code|script|function|program|snippet)\b`),
				regexp.MustCompile(`(?i)\bbuild (a|an|me a?) .*\b(page|website|ui|component|form|app)\b`),
				regexp.MustCompile(`(?i)\bin (python|javascript|typescript|go|golang|java|rust)\b`),
				regexp.MustCompile(`(?i)\bsyntax error\b`),
			},
		},
		{
			Agent:  AgentGeneral,
			Weight: 0.8,
			Keywords: []string{
				"hello", "thanks", "chat", "talk", "explain", "advice",
				"idea", "story", "poem", "joke", "opinion", "recommend",
				"suggest", "meaning", "define", "summarize", "translate",
			},
			Phrases: []string{
				"tell me about", "can you explain", "do you think",
				"give me advice", "help me understand",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^\s*(hi|hey|hello|howdy)\b`),
				regexp.MustCompile(`(?i)\btell me a (joke|story|poem)\b`),
				regexp.MustCompile(`(?i)\bwhat do you think\b`),
			},
		},
	}
}

package ai

import "strings"

const (
	SleepFallback      = "Not enough sleep data for analysis. Log at least 3 nights to get insights."
	BrainstormFallback = "AI brainstorming not available. Try breaking your idea into smaller parts or exploring related concepts."
	defaultGoalAdvice  = "Break your goal into smaller steps, set deadlines, and track your progress regularly."
)

var goalAdvice = map[string]string{
	"personal":  "Consider breaking this into daily habits, tracking progress weekly, and celebrating small wins.",
	"career":    "Network with others in your field, set measurable milestones, and seek feedback regularly.",
	"health":    "Start small, be consistent, track your progress, and don't be afraid to adjust your approach.",
	"learning":  "Set specific study times, use active recall methods, and teach what you learn to others.",
	"financial": "Create a budget, automate savings, and review your progress monthly.",
}

func FallbackInterpretation(tags []string) string {
	var b strings.Builder
	b.WriteString("Dream analysis requires OpenAI API key configuration. ")
	if len(tags) > 0 {
		b.WriteString("Your dream contains themes of: ")
		b.WriteString(strings.Join(tags, ", "))
		b.WriteString(". ")
	}
	b.WriteString("Consider what these elements mean to you personally and how they might relate to your waking life.")
	return b.String()
}

func FallbackGoalSuggestion(category string) string {
	if s, ok := goalAdvice[category]; ok {
		return s
	}
	return defaultGoalAdvice
}

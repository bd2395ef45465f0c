package ai

import (
	"fmt"
	"strings"
	"time"
)

const (
	dreamPersona = "You are a thoughtful dream analyst who provides insightful, supportive interpretations of dreams. " +
		"You draw on common dream symbolism and psychological concepts while acknowledging the personal nature of dream meaning."
	goalPersona       = "You are a supportive life coach who helps people break down their goals into actionable steps."
	sleepPersona      = "You are a sleep health advisor who analyzes sleep patterns and provides supportive, practical advice."
	brainstormPersona = "You are a creative thinking partner who helps develop and expand ideas."
)

// maxSleepEntries caps how many nights go into one analysis prompt.
const maxSleepEntries = 14

var moodDescriptions = map[int]string{
	1: "very negative/distressing",
	2: "somewhat negative",
	3: "neutral",
	4: "positive",
	5: "very positive/euphoric",
}

// MoodDescription maps a 1–5 mood score to its prompt phrase; out of range is neutral.
func MoodDescription(mood int) string {
	if d, ok := moodDescriptions[mood]; ok {
		return d
	}
	return moodDescriptions[3]
}

type SleepEntry struct {
	SleepTime time.Time
	WakeTime  time.Time
	Quality   int
}

const sleepTimeLayout = "2006-01-02 15:04:05-07:00"

func dreamPrompt(content string, mood int, tags []string) string {
	themes := "none specified"
	if len(tags) > 0 {
		themes = strings.Join(tags, ", ")
	}
	return fmt.Sprintf(`Analyze this dream and provide a thoughtful interpretation:

Dream content: %s
Emotional tone: %s
Themes/tags: %s

Provide a concise interpretation (2-3 paragraphs) that:
1. Identifies key symbols and their possible meanings
2. Explores potential emotional or psychological significance
3. Offers constructive insights the dreamer might consider

Be supportive and insightful, not prescriptive. Acknowledge that dream interpretation is subjective.`,
		content, MoodDescription(mood), themes)
}

func goalPrompt(title, description, category string) string {
	if description == "" {
		description = "No description provided"
	}
	return fmt.Sprintf(`Help create actionable steps for this goal:

Goal: %s
Description: %s
Category: %s

Provide 3-5 specific, actionable steps to help achieve this goal. Be practical and encouraging.`,
		title, description, category)
}

func sleepPrompt(entries []SleepEntry) string {
	if len(entries) > maxSleepEntries {
		entries = entries[:maxSleepEntries]
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- Sleep: %s, Wake: %s, Quality: %d/5",
			e.SleepTime.Format(sleepTimeLayout), e.WakeTime.Format(sleepTimeLayout), e.Quality))
	}
	return fmt.Sprintf(`Analyze these sleep patterns and provide insights:

%s

Provide:
1. Overall sleep quality assessment
2. Any patterns you notice
3. 2-3 actionable suggestions for improvement`,
		strings.Join(lines, "\n"))
}

func brainstormPrompt(content string, category *string) string {
	cat := "General"
	if category != nil && *category != "" {
		cat = *category
	}
	return fmt.Sprintf(`Help expand on this idea:

Idea: %s
Category: %s

Provide:
1. 2-3 ways to develop this idea further
2. Potential challenges to consider
3. Related ideas worth exploring`,
		content, cat)
}

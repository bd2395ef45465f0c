package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
	"github.com/yourname/dreamcatcher/internal/storage"
)

const (
	recentDreamLimit = 10
	recentSleepLimit = 14
	maxInsightTags   = 5
)

const emptyJourney = "Start logging to get personalized insights!"

type Insights struct {
	DreamInsights   *string `json:"dream_insights"`
	GoalInsights    *string `json:"goal_insights"`
	SleepInsights   *string `json:"sleep_insights"`
	OverallInsights string  `json:"overall_insights"`
}

type AIStatus struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

func Status(assistant *ai.Assistant) AIStatus {
	if assistant.Available() {
		return AIStatus{Available: true, Message: "AI features are available"}
	}
	return AIStatus{Available: false, Message: "Configure OPENAI_API_KEY or GEMINI_API_KEY to enable AI features"}
}

// BuildInsights fetches the user's recent history and aggregates it.
func BuildInsights(ctx context.Context, repos *storage.Repositories, assistant *ai.Assistant, user *internal.User) (*Insights, error) {
	dreams, err := repos.Dreams.ListDreams(ctx, user.ID, storage.DreamFilter{Page: storage.Page{Limit: recentDreamLimit}})
	if err != nil {
		return nil, err
	}
	goals, err := repos.Goals.ListGoals(ctx, user.ID, storage.GoalFilter{})
	if err != nil {
		return nil, err
	}
	logs, err := repos.Sleep.ListSleepLogs(ctx, user.ID, storage.SleepLogFilter{Page: storage.Page{Limit: recentSleepLimit}})
	if err != nil {
		return nil, err
	}
	insights := Aggregate(ctx, assistant, dreams, goals, logs)
	return &insights, nil
}

// Aggregate is deterministic apart from the sleep composer's provider call.
func Aggregate(ctx context.Context, assistant *ai.Assistant, dreams []internal.Dream, goals []internal.Goal, logs []internal.SleepLog) Insights {
	out := Insights{
		DreamInsights:   DreamInsight(dreams),
		GoalInsights:    GoalInsight(goals),
		OverallInsights: OverallInsight(len(dreams), len(goals), len(logs)),
	}
	if len(logs) >= ai.MinSleepEntries {
		entries := make([]ai.SleepEntry, len(logs))
		for i, l := range logs {
			entries[i] = ai.SleepEntry{SleepTime: l.SleepTime, WakeTime: l.WakeTime, Quality: l.Quality}
		}
		text := assistant.AnalyzeSleepPatterns(ctx, entries)
		out.SleepInsights = &text
	}
	return out
}

func DreamInsight(dreams []internal.Dream) *string {
	seen := map[string]bool{}
	var tags []string
	moodSum := 0
	for _, d := range dreams {
		moodSum += d.Mood
		for _, t := range d.Tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	if len(tags) > maxInsightTags {
		tags = tags[:maxInsightTags]
	}
	avg := float64(moodSum) / float64(len(dreams))
	s := fmt.Sprintf("Your recent dreams feature themes of: %s. Average dream mood: %.1f/5.", strings.Join(tags, ", "), avg)
	return &s
}

func GoalInsight(goals []internal.Goal) *string {
	if len(goals) == 0 {
		return nil
	}
	active, completed, progress := 0, 0, 0
	for _, g := range goals {
		switch g.Status {
		case internal.GoalStatusInProgress:
			active++
		case internal.GoalStatusCompleted:
			completed++
		}
		progress += g.Progress
	}
	avg := float64(progress) / float64(len(goals))
	s := fmt.Sprintf("You have %d active goals and %d completed. Average progress: %.0f%%.", active, completed, avg)
	return &s
}

func OverallInsight(dreams, goals, sleepLogs int) string {
	var parts []string
	if dreams > 0 {
		parts = append(parts, fmt.Sprintf("%d dreams recorded", dreams))
	}
	if goals > 0 {
		parts = append(parts, fmt.Sprintf("%d goals tracked", goals))
	}
	if sleepLogs > 0 {
		parts = append(parts, fmt.Sprintf("%d sleep logs", sleepLogs))
	}
	if len(parts) == 0 {
		return emptyJourney
	}
	return "Your journey includes: " + strings.Join(parts, ", ") + "."
}

package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/metrics"
)

const (
	FeatureDream      = "dream_interpretation"
	FeatureGoal       = "goal_suggestion"
	FeatureSleep      = "sleep_analysis"
	FeatureBrainstorm = "brainstorm"
)

// MinSleepEntries is the fewest nights worth sending to the model.
const MinSleepEntries = 3

// Assistant composes feature prompts and always returns usable text.
type Assistant struct {
	gen     Generator
	timeout time.Duration
	logger  internal.Logger
}

func NewAssistant(gen Generator, timeout time.Duration, logger internal.Logger) *Assistant {
	return &Assistant{gen: gen, timeout: timeout, logger: logger}
}

func (a *Assistant) Available() bool { return a.gen.Available() }

func (a *Assistant) InterpretDream(ctx context.Context, content string, mood int, tags []string) string {
	text, ok := a.complete(ctx, FeatureDream, Request{
		System:      dreamPersona,
		Prompt:      dreamPrompt(content, mood, tags),
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if !ok {
		return FallbackInterpretation(tags)
	}
	return text
}

func (a *Assistant) SuggestGoalSteps(ctx context.Context, title, description, category string) string {
	text, ok := a.complete(ctx, FeatureGoal, Request{
		System:      goalPersona,
		Prompt:      goalPrompt(title, description, category),
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if !ok {
		return FallbackGoalSuggestion(category)
	}
	return text
}

// AnalyzeSleepPatterns needs at least MinSleepEntries nights; with fewer it
// returns the fallback without calling the provider, even when one is configured.
func (a *Assistant) AnalyzeSleepPatterns(ctx context.Context, entries []SleepEntry) string {
	if len(entries) < MinSleepEntries {
		metrics.RecordAIRequest(FeatureSleep, metrics.OutcomeUnavailable)
		return SleepFallback
	}
	text, ok := a.complete(ctx, FeatureSleep, Request{
		System:      sleepPersona,
		Prompt:      sleepPrompt(entries),
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if !ok {
		return SleepFallback
	}
	return text
}

func (a *Assistant) BrainstormIdea(ctx context.Context, content string, category *string) string {
	text, ok := a.complete(ctx, FeatureBrainstorm, Request{
		System:      brainstormPersona,
		Prompt:      brainstormPrompt(content, category),
		MaxTokens:   400,
		Temperature: 0.8,
	})
	if !ok {
		return BrainstormFallback
	}
	return text
}

// complete runs one bounded provider call. ok is false whenever the caller
// should use its fallback text.
func (a *Assistant) complete(ctx context.Context, feature string, req Request) (string, bool) {
	if !a.gen.Available() {
		metrics.RecordAIRequest(feature, metrics.OutcomeUnavailable)
		return "", false
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := a.gen.Generate(ctx, req)
	metrics.ObserveAIDuration(feature, time.Since(start))
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		a.logger.Warnf("ai: %s failed, using fallback: %v", feature, err)
		metrics.RecordAIRequest(feature, metrics.OutcomeFailed)
		return "", false
	}
	metrics.RecordAIRequest(feature, metrics.OutcomeGenerated)
	return text, true
}

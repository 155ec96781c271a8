// services/conditions.go - Per-condition-type progress evaluation
package services

import (
	"fmt"
	"time"

	"quizforge/models"
)

// Progress is a normalized value/max pair toward a progress-style unlock
// condition. Value is always clamped to Max.
type Progress struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

// Satisfied reports whether the condition is fully met.
func (p Progress) Satisfied() bool {
	return p.Value >= p.Max
}

// EvaluateCondition computes a user's progress toward one achievement from the
// completion history (ordered newest first). A nil result with nil error means
// there is no progress to show: either the user has not started, or the
// condition is repeat_quiz, which needs per-quiz context this engine does not
// carry. Errors are per-achievement; callers log and skip, never abort the batch.
func EvaluateCondition(a models.Achievement, history []models.QuizCompletion, now time.Time) (*Progress, error) {
	cond, err := models.ParseUnlockCondition(a.ConditionType, a.ConditionConfig)
	if err != nil {
		return nil, err
	}

	var p Progress
	switch cond.Type {
	case models.ConditionPlayTotal:
		p = Progress{Value: len(history), Max: cond.PlayTotal.Count}

	case models.ConditionPlayWindow:
		since := windowStart(cond.PlayWindow.Window, now)
		count := 0
		for _, completion := range history {
			if !completion.CompletedAt.Before(since) && !completion.CompletedAt.After(now) {
				count++
			}
		}
		p = Progress{Value: count, Max: cond.PlayWindow.Count}

	case models.ConditionPerfectTotal:
		count := 0
		for _, completion := range history {
			if completion.Score == completion.TotalQuestions &&
				completion.TotalQuestions >= cond.PerfectTotal.MinQuestions {
				count++
			}
		}
		p = Progress{Value: count, Max: cond.PerfectTotal.Count}

	case models.ConditionStreak:
		// Bounded lookback: the most recent 2×weeks completions are enough to
		// cover the target number of active weeks without scanning a lifetime.
		p = Progress{
			Value: countDistinctWeeks(history, 2*cond.Streak.Weeks),
			Max:   cond.Streak.Weeks,
		}

	case models.ConditionRepeatQuiz:
		return nil, nil

	default:
		return nil, fmt.Errorf("condition type %q has no evaluator", cond.Type)
	}

	if p.Value <= 0 {
		// Not started: omit rather than emit a zero record.
		return nil, nil
	}
	if p.Value > p.Max {
		p.Value = p.Max
	}
	return &p, nil
}

// windowStart maps a window to its inclusive lower bound. The day window is
// anchored at midnight today in now's location, not a rolling 24 hours.
func windowStart(w models.Window, now time.Time) time.Time {
	switch w {
	case models.WindowDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case models.WindowWeek:
		return now.AddDate(0, 0, -7)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// countDistinctWeeks counts distinct week keys among the newest lookback
// completions. Weeks with any activity count; they need not be consecutive.
func countDistinctWeeks(history []models.QuizCompletion, lookback int) int {
	if lookback > 0 && len(history) > lookback {
		history = history[:lookback]
	}
	weeks := make(map[string]struct{}, len(history))
	for _, completion := range history {
		weeks[WeekKey(completion.CompletedAt)] = struct{}{}
	}
	return len(weeks)
}

// models/condition.go - Unlock condition types and their typed configs
package models

import (
	"encoding/json"
	"fmt"
)

// ConditionType identifies the declarative rule an achievement requires before
// it unlocks. The set is closed; each type carries its own config shape.
type ConditionType string

const (
	// ConditionPlayTotal counts quiz completions over the account lifetime.
	ConditionPlayTotal ConditionType = "play_n_quizzes_total"
	// ConditionPlayWindow counts quiz completions inside a recent time window.
	ConditionPlayWindow ConditionType = "play_n_quizzes"
	// ConditionPerfectTotal counts perfect-score completions of sufficient length.
	ConditionPerfectTotal ConditionType = "perfect_scores_total"
	// ConditionStreak counts distinct ISO weeks with any activity.
	ConditionStreak ConditionType = "streak"
	// ConditionRepeatQuiz needs a specific quiz as evaluation context, which the
	// engine's inputs do not carry. It is never evaluated or auto-awarded.
	ConditionRepeatQuiz ConditionType = "repeat_quiz"
)

// Window selects the lookback for ConditionPlayWindow. "day" means since
// midnight today, not a rolling 24 hours.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

type PlayTotalConfig struct {
	Count int `json:"count"`
}

type PlayWindowConfig struct {
	Count  int    `json:"count"`
	Window Window `json:"window"`
}

type PerfectTotalConfig struct {
	Count        int `json:"count"`
	MinQuestions int `json:"min_questions"`
}

type StreakConfig struct {
	Weeks int `json:"weeks"`
}

// UnlockCondition is the decoded form of (ConditionType, ConditionConfig):
// exactly one config field is set, matching Type. Decoding through this type
// keeps "config.count is missing" from ever reaching the evaluator as a zero.
type UnlockCondition struct {
	Type         ConditionType
	PlayTotal    *PlayTotalConfig
	PlayWindow   *PlayWindowConfig
	PerfectTotal *PerfectTotalConfig
	Streak       *StreakConfig
}

// Defaults applied when the catalog entry omits a config field.
const (
	DefaultPlayTotalCount   = 50
	DefaultPlayWindowCount  = 3
	DefaultPerfectCount     = 10
	DefaultPerfectMinLength = 5
	DefaultStreakWeeks      = 4
)

// ParseUnlockCondition decodes a raw config blob into its typed variant and
// fills in defaults. An unknown type, unknown window, or malformed blob is an
// error; callers skip that single achievement rather than failing the batch.
func ParseUnlockCondition(conditionType ConditionType, raw JSONConfig) (UnlockCondition, error) {
	cond := UnlockCondition{Type: conditionType}

	decode := func(v interface{}) error {
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("invalid %s config: %w", conditionType, err)
		}
		return nil
	}

	switch conditionType {
	case ConditionPlayTotal:
		cfg := &PlayTotalConfig{}
		if err := decode(cfg); err != nil {
			return UnlockCondition{}, err
		}
		if cfg.Count <= 0 {
			cfg.Count = DefaultPlayTotalCount
		}
		cond.PlayTotal = cfg

	case ConditionPlayWindow:
		cfg := &PlayWindowConfig{}
		if err := decode(cfg); err != nil {
			return UnlockCondition{}, err
		}
		if cfg.Count <= 0 {
			cfg.Count = DefaultPlayWindowCount
		}
		if cfg.Window == "" {
			cfg.Window = WindowDay
		}
		switch cfg.Window {
		case WindowDay, WindowWeek, WindowMonth:
		default:
			return UnlockCondition{}, fmt.Errorf("unknown window %q", cfg.Window)
		}
		cond.PlayWindow = cfg

	case ConditionPerfectTotal:
		cfg := &PerfectTotalConfig{}
		if err := decode(cfg); err != nil {
			return UnlockCondition{}, err
		}
		if cfg.Count <= 0 {
			cfg.Count = DefaultPerfectCount
		}
		if cfg.MinQuestions <= 0 {
			cfg.MinQuestions = DefaultPerfectMinLength
		}
		cond.PerfectTotal = cfg

	case ConditionStreak:
		cfg := &StreakConfig{}
		if err := decode(cfg); err != nil {
			return UnlockCondition{}, err
		}
		if cfg.Weeks <= 0 {
			cfg.Weeks = DefaultStreakWeeks
		}
		cond.Streak = cfg

	case ConditionRepeatQuiz:
		// No config; the condition is declared but never evaluated here.

	default:
		return UnlockCondition{}, fmt.Errorf("unknown condition type %q", conditionType)
	}

	return cond, nil
}

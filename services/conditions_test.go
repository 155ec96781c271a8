package services

import (
	"testing"
	"time"

	"quizforge/models"
)

// now is a Wednesday afternoon; the surrounding week is Mon 2026-03-16
// through Sun 2026-03-22.
var evalNow = time.Date(2026, time.March, 18, 15, 0, 0, 0, time.UTC)

func achievement(conditionType models.ConditionType, config string) models.Achievement {
	return models.Achievement{
		Slug:            "test-" + string(conditionType),
		ConditionType:   conditionType,
		ConditionConfig: models.JSONConfig(config),
	}
}

func completionAt(at time.Time) models.QuizCompletion {
	return models.QuizCompletion{Score: 3, TotalQuestions: 5, CompletedAt: at}
}

// completions builds a newest-first history from the given timestamps.
func completions(at ...time.Time) []models.QuizCompletion {
	history := make([]models.QuizCompletion, 0, len(at))
	for _, ts := range at {
		history = append(history, completionAt(ts))
	}
	return history
}

func TestPlayTotalCountsLifetime(t *testing.T) {
	a := achievement(models.ConditionPlayTotal, `{"count": 3}`)
	history := completions(
		evalNow.AddDate(0, 0, -1),
		evalNow.AddDate(0, -2, 0),
		evalNow.AddDate(-1, 0, 0),
	)

	progress, err := EvaluateCondition(a, history[:2], evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress == nil || progress.Value != 2 || progress.Max != 3 {
		t.Fatalf("got %+v, want 2/3", progress)
	}

	progress, err = EvaluateCondition(a, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress == nil || !progress.Satisfied() {
		t.Fatalf("got %+v, want satisfied 3/3", progress)
	}
}

func TestPlayTotalClampsToMax(t *testing.T) {
	a := achievement(models.ConditionPlayTotal, `{"count": 2}`)
	history := completions(evalNow, evalNow, evalNow, evalNow)

	progress, err := EvaluateCondition(a, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress.Value != 2 || progress.Max != 2 {
		t.Fatalf("got %d/%d, want clamped 2/2", progress.Value, progress.Max)
	}
}

func TestEmptyHistoryYieldsNoProgress(t *testing.T) {
	a := achievement(models.ConditionPlayTotal, `{"count": 3}`)
	progress, err := EvaluateCondition(a, nil, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress != nil {
		t.Fatalf("got %+v, want nil for untouched achievement", progress)
	}
}

func TestPlayWindowDayStartsAtMidnight(t *testing.T) {
	a := achievement(models.ConditionPlayWindow, `{"count": 2, "window": "day"}`)
	midnight := time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC)

	history := completions(
		midnight.Add(1*time.Second),  // 00:00:01 today: counts
		midnight.Add(-1*time.Minute), // yesterday 23:59: does not
		evalNow.Add(-20*time.Hour),   // within a rolling 24h but before midnight
	)

	progress, err := EvaluateCondition(a, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress == nil || progress.Value != 1 {
		t.Fatalf("got %+v, want 1/2 (only the post-midnight completion)", progress)
	}
}

func TestPlayWindowWeekAndMonth(t *testing.T) {
	history := completions(
		evalNow.AddDate(0, 0, -2),
		evalNow.AddDate(0, 0, -6),
		evalNow.AddDate(0, 0, -10),
		evalNow.AddDate(0, 0, -40),
	)

	week := achievement(models.ConditionPlayWindow, `{"count": 5, "window": "week"}`)
	progress, err := EvaluateCondition(week, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress.Value != 2 {
		t.Errorf("week window counted %d, want 2", progress.Value)
	}

	month := achievement(models.ConditionPlayWindow, `{"count": 5, "window": "month"}`)
	progress, err = EvaluateCondition(month, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress.Value != 3 {
		t.Errorf("month window counted %d, want 3", progress.Value)
	}
}

func TestPlayWindowUnknownWindowFails(t *testing.T) {
	a := achievement(models.ConditionPlayWindow, `{"count": 2, "window": "fortnight"}`)
	if _, err := EvaluateCondition(a, completions(evalNow), evalNow); err == nil {
		t.Fatal("expected error for unknown window")
	}
}

func TestPerfectScoresRequireMinLength(t *testing.T) {
	a := achievement(models.ConditionPerfectTotal, `{"count": 10, "min_questions": 5}`)

	history := []models.QuizCompletion{
		{Score: 5, TotalQuestions: 5, CompletedAt: evalNow}, // counts
		{Score: 4, TotalQuestions: 4, CompletedAt: evalNow}, // perfect but too short
		{Score: 4, TotalQuestions: 5, CompletedAt: evalNow}, // long enough but imperfect
		{Score: 8, TotalQuestions: 8, CompletedAt: evalNow}, // counts
	}

	progress, err := EvaluateCondition(a, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress == nil || progress.Value != 2 || progress.Max != 10 {
		t.Fatalf("got %+v, want 2/10", progress)
	}
}

func TestStreakCountsDistinctWeeks(t *testing.T) {
	a := achievement(models.ConditionStreak, `{"weeks": 3}`)

	history := completions(
		evalNow,                     // this week
		evalNow.AddDate(0, 0, -1),   // this week again
		evalNow.AddDate(0, 0, -7),   // last week
		evalNow.AddDate(0, 0, -14),  // two weeks back
	)

	progress, err := EvaluateCondition(a, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress == nil || progress.Value != 3 || progress.Max != 3 {
		t.Fatalf("got %+v, want 3/3", progress)
	}
}

func TestStreakToleratesGapWeeks(t *testing.T) {
	// Activity in this week and three weeks ago, nothing in between. Distinct
	// active weeks count even when not consecutive.
	a := achievement(models.ConditionStreak, `{"weeks": 2}`)
	history := completions(
		evalNow,
		evalNow.AddDate(0, 0, -21),
	)

	progress, err := EvaluateCondition(a, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress == nil || progress.Value != 2 {
		t.Fatalf("got %+v, want 2/2 despite the gap", progress)
	}
}

func TestStreakLookbackIsBounded(t *testing.T) {
	// weeks=1 means only the 2 newest completions are inspected. The older
	// completion in a different week must not count.
	a := achievement(models.ConditionStreak, `{"weeks": 1}`)
	history := completions(
		evalNow,
		evalNow.AddDate(0, 0, -1),
		evalNow.AddDate(0, 0, -14),
	)

	progress, err := EvaluateCondition(a, history, evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress == nil || progress.Value != 1 || progress.Max != 1 {
		t.Fatalf("got %+v, want 1/1", progress)
	}
}

func TestRepeatQuizIsNotEvaluated(t *testing.T) {
	a := achievement(models.ConditionRepeatQuiz, `{"count": 5}`)
	progress, err := EvaluateCondition(a, completions(evalNow, evalNow), evalNow)
	if err != nil {
		t.Fatal(err)
	}
	if progress != nil {
		t.Fatalf("repeat_quiz produced progress %+v, want none", progress)
	}
}

func TestMalformedConfigFailsThatAchievementOnly(t *testing.T) {
	a := achievement(models.ConditionPlayTotal, `{"count": "three"}`)
	if _, err := EvaluateCondition(a, completions(evalNow), evalNow); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestDefaultsApplyWhenConfigIsEmpty(t *testing.T) {
	tests := []struct {
		conditionType models.ConditionType
		wantMax       int
	}{
		{models.ConditionPlayTotal, models.DefaultPlayTotalCount},
		{models.ConditionPlayWindow, models.DefaultPlayWindowCount},
		{models.ConditionPerfectTotal, models.DefaultPerfectCount},
		{models.ConditionStreak, models.DefaultStreakWeeks},
	}

	history := []models.QuizCompletion{
		{Score: 5, TotalQuestions: 5, CompletedAt: evalNow},
	}

	for _, tt := range tests {
		a := achievement(tt.conditionType, "")
		progress, err := EvaluateCondition(a, history, evalNow)
		if err != nil {
			t.Errorf("%s: %v", tt.conditionType, err)
			continue
		}
		if progress == nil || progress.Max != tt.wantMax {
			t.Errorf("%s: got %+v, want max %d", tt.conditionType, progress, tt.wantMax)
		}
	}
}

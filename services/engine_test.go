package services

import (
	"errors"
	"testing"
	"time"

	"quizforge/models"
)

type fakeCatalog struct {
	achievements []models.Achievement
	err          error
}

func (f *fakeCatalog) ListAchievements() ([]models.Achievement, error) {
	return f.achievements, f.err
}

type fakeHistory struct {
	completions []models.QuizCompletion
	err         error
	calls       int
}

func (f *fakeHistory) ListCompletions(userID uint, limit int) ([]models.QuizCompletion, error) {
	f.calls++
	return f.completions, f.err
}

type fakeUnlocks struct {
	records []models.UnlockRecord
	err     error
}

func (f *fakeUnlocks) ListUnlockRecords(userID uint) ([]models.UnlockRecord, error) {
	return f.records, f.err
}

func newTestEngine(catalog *fakeCatalog, history *fakeHistory, unlocks *fakeUnlocks) *AchievementEngine {
	engine := NewAchievementEngine(catalog, history, unlocks)
	engine.now = func() time.Time { return evalNow }
	return engine
}

func intPtr(n int) *int { return &n }

func TestBuildViewsEndToEnd(t *testing.T) {
	catalog := &fakeCatalog{achievements: []models.Achievement{
		{ID: 1, Slug: "play-three", Name: "Play Three",
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": 3}`)},
	}}
	history := &fakeHistory{completions: completions(
		evalNow.AddDate(0, 0, -1),
		evalNow.AddDate(0, 0, -2),
	)}
	engine := newTestEngine(catalog, history, &fakeUnlocks{})

	views, err := engine.BuildViews(7, models.TierFree)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}

	view := views[0]
	if view.Status != models.StatusLockedFree {
		t.Errorf("status = %s, want locked_free", view.Status)
	}
	if view.ProgressValue == nil || *view.ProgressValue != 2 {
		t.Errorf("progress value = %v, want 2", view.ProgressValue)
	}
	if view.ProgressMax == nil || *view.ProgressMax != 3 {
		t.Errorf("progress max = %v, want 3", view.ProgressMax)
	}

	// A third completion fills the bar, but only the award step can flip the
	// status to unlocked.
	history.completions = completions(
		evalNow,
		evalNow.AddDate(0, 0, -1),
		evalNow.AddDate(0, 0, -2),
	)
	views, err = engine.BuildViews(7, models.TierFree)
	if err != nil {
		t.Fatal(err)
	}
	if *views[0].ProgressValue != 3 {
		t.Errorf("progress value = %d, want 3", *views[0].ProgressValue)
	}
	if views[0].Status != models.StatusLockedFree {
		t.Errorf("status = %s, still want locked_free without an unlock record", views[0].Status)
	}
}

func TestPersistedProgressWinsOverComputed(t *testing.T) {
	catalog := &fakeCatalog{achievements: []models.Achievement{
		{ID: 1, Slug: "play-ten",
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": 10}`)},
	}}
	// Live history would compute 1/10; the stored 7/10 must win verbatim.
	history := &fakeHistory{completions: completions(evalNow)}
	unlocks := &fakeUnlocks{records: []models.UnlockRecord{
		{AchievementID: 1, ProgressValue: intPtr(7), ProgressMax: intPtr(10)},
	}}
	engine := newTestEngine(catalog, history, unlocks)

	views, err := engine.BuildViews(7, models.TierFree)
	if err != nil {
		t.Fatal(err)
	}
	if *views[0].ProgressValue != 7 || *views[0].ProgressMax != 10 {
		t.Fatalf("got %d/%d, want persisted 7/10", *views[0].ProgressValue, *views[0].ProgressMax)
	}
}

func TestUnlockedRecordSetsStatusAndTimestamp(t *testing.T) {
	unlockedAt := evalNow.AddDate(0, -1, 0)
	catalog := &fakeCatalog{achievements: []models.Achievement{
		{ID: 1, Slug: "play-one",
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": 1}`)},
	}}
	unlocks := &fakeUnlocks{records: []models.UnlockRecord{
		{AchievementID: 1, UnlockedAt: &unlockedAt},
	}}
	engine := newTestEngine(catalog, &fakeHistory{}, unlocks)

	views, err := engine.BuildViews(7, models.TierFree)
	if err != nil {
		t.Fatal(err)
	}
	view := views[0]
	if view.Status != models.StatusUnlocked {
		t.Errorf("status = %s, want unlocked", view.Status)
	}
	if view.UnlockedAt == nil || !view.UnlockedAt.Equal(unlockedAt) {
		t.Errorf("unlocked_at = %v, want %v", view.UnlockedAt, unlockedAt)
	}
	if view.ProgressValue != nil {
		t.Errorf("unlocked view carries progress %v, want none", view.ProgressValue)
	}
}

func TestPremiumOnlyGating(t *testing.T) {
	catalog := &fakeCatalog{achievements: []models.Achievement{
		{ID: 1, Slug: "vip", IsPremiumOnly: true,
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": 5}`)},
	}}

	for _, tt := range []struct {
		tier models.Tier
		want models.AchievementStatus
	}{
		{models.TierFree, models.StatusLockedPremium},
		{models.TierVisitor, models.StatusLockedPremium},
		{models.TierPremium, models.StatusLockedFree},
	} {
		engine := newTestEngine(catalog, &fakeHistory{}, &fakeUnlocks{})
		views, err := engine.BuildViews(7, tt.tier)
		if err != nil {
			t.Fatal(err)
		}
		if views[0].Status != tt.want {
			t.Errorf("tier %s: status = %s, want %s", tt.tier, views[0].Status, tt.want)
		}
	}
}

func TestVisitorSkipsHistoryAndProgress(t *testing.T) {
	catalog := &fakeCatalog{achievements: []models.Achievement{
		{ID: 1, Slug: "free-entry",
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": 5}`)},
		{ID: 2, Slug: "vip-entry", IsPremiumOnly: true,
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": 5}`)},
	}}
	history := &fakeHistory{completions: completions(evalNow)}
	engine := newTestEngine(catalog, history, &fakeUnlocks{})

	views, err := engine.BuildViews(0, models.TierVisitor)
	if err != nil {
		t.Fatal(err)
	}

	if history.calls != 0 {
		t.Errorf("history fetched %d times for a visitor, want 0", history.calls)
	}
	if views[0].Status != models.StatusLockedFree || views[1].Status != models.StatusLockedPremium {
		t.Errorf("visitor statuses = %s, %s", views[0].Status, views[1].Status)
	}
	for _, view := range views {
		if view.Status == models.StatusUnlocked {
			t.Error("visitor saw an unlocked achievement")
		}
		if view.ProgressValue != nil {
			t.Errorf("visitor saw progress on %s", view.Slug)
		}
	}
}

func TestEvaluationErrorSkipsOnlyThatAchievement(t *testing.T) {
	catalog := &fakeCatalog{achievements: []models.Achievement{
		{ID: 1, Slug: "broken",
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": "lots"}`)},
		{ID: 2, Slug: "fine",
			ConditionType:   models.ConditionPlayTotal,
			ConditionConfig: models.JSONConfig(`{"count": 5}`)},
	}}
	history := &fakeHistory{completions: completions(evalNow)}
	engine := newTestEngine(catalog, history, &fakeUnlocks{})

	views, err := engine.BuildViews(7, models.TierFree)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want both achievements listed", len(views))
	}
	if views[0].ProgressValue != nil {
		t.Error("broken achievement still produced progress")
	}
	if views[1].ProgressValue == nil || *views[1].ProgressValue != 1 {
		t.Error("healthy achievement lost its progress")
	}
}

func TestStorageErrorsPropagate(t *testing.T) {
	wrapped := errors.New("catalog read failed")
	engine := newTestEngine(&fakeCatalog{err: wrapped}, &fakeHistory{}, &fakeUnlocks{})

	_, err := engine.BuildViews(7, models.TierFree)
	if !errors.Is(err, wrapped) {
		t.Fatalf("got %v, want the store error back", err)
	}
}

// services/engine.go - Achievement unlock & progress engine
package services

import (
	"log"
	"time"

	"quizforge/models"

	"gorm.io/gorm"
)

// HistoryLimit caps how much completion history one evaluation pulls. It
// comfortably dominates every seeded condition's lookback, so per-request cost
// tracks recent activity rather than lifetime history.
const HistoryLimit = 500

// AchievementEngine computes per-achievement unlock status and progress for
// one user per request. It is read-only and side-effect free: it never writes
// an UnlockRecord, so re-running it speculatively is always safe.
type AchievementEngine struct {
	catalog CatalogStore
	history HistoryStore
	unlocks UnlockStore
	now     func() time.Time
}

func NewAchievementEngine(catalog CatalogStore, history HistoryStore, unlocks UnlockStore) *AchievementEngine {
	return &AchievementEngine{
		catalog: catalog,
		history: history,
		unlocks: unlocks,
		now:     time.Now,
	}
}

// BuildViews produces one AchievementView per catalog entry, in catalog order
// (rarity asc, name asc). userID 0 is a visitor: every entry is locked, no
// history is fetched and no progress is computed.
func (e *AchievementEngine) BuildViews(userID uint, tier models.Tier) ([]models.AchievementView, error) {
	achievements, err := e.catalog.ListAchievements()
	if err != nil {
		return nil, err
	}

	var history []models.QuizCompletion
	recordByAchievement := map[uint]models.UnlockRecord{}
	if userID != 0 {
		history, err = e.history.ListCompletions(userID, HistoryLimit)
		if err != nil {
			return nil, err
		}
		records, err := e.unlocks.ListUnlockRecords(userID)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			recordByAchievement[record.AchievementID] = record
		}
	}

	now := e.now()
	views := make([]models.AchievementView, 0, len(achievements))
	for _, achievement := range achievements {
		view := models.AchievementView{
			Achievement: achievement,
			Status:      lockedStatus(achievement, tier),
		}

		record, hasRecord := recordByAchievement[achievement.ID]
		if hasRecord && record.UnlockedAt != nil {
			view.Status = models.StatusUnlocked
			view.UnlockedAt = record.UnlockedAt
			views = append(views, view)
			continue
		}

		// Locked: attach progress. A persisted record always wins over a
		// recomputed value, so a recorded pair can never regress.
		switch {
		case hasRecord && record.ProgressValue != nil && record.ProgressMax != nil:
			view.ProgressValue = record.ProgressValue
			view.ProgressMax = record.ProgressMax
		case userID != 0:
			progress, err := EvaluateCondition(achievement, history, now)
			if err != nil {
				log.Printf("achievement %s: evaluation failed, skipping: %v", achievement.Slug, err)
			} else if progress != nil {
				view.ProgressValue = &progress.Value
				view.ProgressMax = &progress.Max
			}
		}

		views = append(views, view)
	}

	return views, nil
}

func lockedStatus(achievement models.Achievement, tier models.Tier) models.AchievementStatus {
	if achievement.IsPremiumOnly && tier != models.TierPremium {
		return models.StatusLockedPremium
	}
	return models.StatusLockedFree
}

// AwardAchievements is the write path the read engine deliberately lacks:
// after a completion is recorded it evaluates every not-yet-unlocked
// achievement the user can earn and persists an UnlockRecord for each newly
// satisfied condition. Runs on the caller's transaction.
func AwardAchievements(stores *GormStores, user *models.User, now time.Time) ([]models.Achievement, error) {
	achievements, err := stores.ListAchievements()
	if err != nil {
		return nil, err
	}
	records, err := stores.ListUnlockRecords(user.ID)
	if err != nil {
		return nil, err
	}
	history, err := stores.ListCompletions(user.ID, HistoryLimit)
	if err != nil {
		return nil, err
	}

	recordByAchievement := make(map[uint]models.UnlockRecord, len(records))
	for _, record := range records {
		recordByAchievement[record.AchievementID] = record
	}

	var newlyUnlocked []models.Achievement
	for _, achievement := range achievements {
		existing, hasRecord := recordByAchievement[achievement.ID]
		if hasRecord && existing.UnlockedAt != nil {
			continue
		}
		if achievement.IsPremiumOnly && !user.IsPremium {
			continue
		}

		progress, err := EvaluateCondition(achievement, history, now)
		if err != nil {
			log.Printf("achievement %s: evaluation failed, skipping: %v", achievement.Slug, err)
			continue
		}
		if progress == nil || !progress.Satisfied() {
			continue
		}

		unlockedAt := now
		if hasRecord {
			err = stores.db.Model(&models.UnlockRecord{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"unlocked_at":    unlockedAt,
					"progress_value": progress.Value,
					"progress_max":   progress.Max,
				}).Error
		} else {
			err = stores.db.Create(&models.UnlockRecord{
				UserID:        user.ID,
				AchievementID: achievement.ID,
				UnlockedAt:    &unlockedAt,
				ProgressValue: &progress.Value,
				ProgressMax:   &progress.Max,
			}).Error
		}
		if err != nil {
			return nil, classifyStorageError(err)
		}

		newlyUnlocked = append(newlyUnlocked, achievement)
	}

	return newlyUnlocked, nil
}

// RecordCompletion persists one finished quiz run and runs AwardAchievements
// on the same transaction, so the completion and any unlocks it triggers land
// together or not at all.
func RecordCompletion(db *gorm.DB, user *models.User, completion *models.QuizCompletion) ([]models.Achievement, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, classifyStorageError(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(completion).Error; err != nil {
		tx.Rollback()
		return nil, classifyStorageError(err)
	}

	newlyUnlocked, err := AwardAchievements(NewGormStores(tx), user, completion.CompletedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, classifyStorageError(err)
	}
	return newlyUnlocked, nil
}

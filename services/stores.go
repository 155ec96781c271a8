// services/stores.go - Storage interfaces and their gorm implementation
package services

import (
	"quizforge/models"

	"gorm.io/gorm"
)

// CatalogStore lists the achievement catalog in presentation order.
type CatalogStore interface {
	ListAchievements() ([]models.Achievement, error)
}

// HistoryStore lists a user's quiz completions, newest first. A positive limit
// caps how much history one evaluation pulls.
type HistoryStore interface {
	ListCompletions(userID uint, limit int) ([]models.QuizCompletion, error)
}

// UnlockStore lists a user's persisted unlock/progress records.
type UnlockStore interface {
	ListUnlockRecords(userID uint) ([]models.UnlockRecord, error)
}

// GormStores backs all three store interfaces with one gorm handle, which may
// be the shared connection or an open transaction.
type GormStores struct {
	db *gorm.DB
}

func NewGormStores(db *gorm.DB) *GormStores {
	return &GormStores{db: db}
}

func (s *GormStores) ListAchievements() ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := s.db.Order("rarity ASC, name ASC").Find(&achievements).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	return achievements, nil
}

func (s *GormStores) ListCompletions(userID uint, limit int) ([]models.QuizCompletion, error) {
	var completions []models.QuizCompletion
	query := s.db.Where("user_id = ?", userID).Order("completed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&completions).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	return completions, nil
}

func (s *GormStores) ListUnlockRecords(userID uint) ([]models.UnlockRecord, error) {
	var records []models.UnlockRecord
	if err := s.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	return records, nil
}

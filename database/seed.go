// database/seed.go - Default achievement catalog
package database

import (
	"log"

	"quizforge/models"

	"gorm.io/gorm"
)

// SeedAchievements inserts the default catalog when the table is empty.
// Idempotent: an already-populated (or externally managed) catalog is left alone.
func SeedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding default achievement catalog...")

	achievements := []models.Achievement{
		{
			Slug:             "first-steps",
			Name:             "First Steps",
			ShortDescription: "Complete your first quiz",
			Category:         "Activity",
			Rarity:           0,
			ConditionType:    models.ConditionPlayTotal,
			ConditionConfig:  models.JSONConfig(`{"count": 1}`),
			IconKey:          "footsteps",
		},
		{
			Slug:             "daily-triple",
			Name:             "Daily Triple",
			ShortDescription: "Complete 3 quizzes in one day",
			Category:         "Activity",
			Rarity:           1,
			ConditionType:    models.ConditionPlayWindow,
			ConditionConfig:  models.JSONConfig(`{"count": 3, "window": "day"}`),
			IconKey:          "calendar-day",
		},
		{
			Slug:             "weekly-dozen",
			Name:             "Weekly Dozen",
			ShortDescription: "Complete 12 quizzes in a week",
			Category:         "Activity",
			Rarity:           2,
			ConditionType:    models.ConditionPlayWindow,
			ConditionConfig:  models.JSONConfig(`{"count": 12, "window": "week"}`),
			IconKey:          "calendar-week",
		},
		{
			Slug:             "perfect-ten",
			Name:             "Perfect Ten",
			ShortDescription: "Score 10 perfect quizzes of 5+ questions",
			Category:         "Accuracy",
			Rarity:           3,
			ConditionType:    models.ConditionPerfectTotal,
			ConditionConfig:  models.JSONConfig(`{"count": 10, "min_questions": 5}`),
			IconKey:          "target",
		},
		{
			Slug:             "month-of-mondays",
			Name:             "Month of Mondays",
			ShortDescription: "Stay active across 4 different weeks",
			Category:         "Streak",
			Rarity:           3,
			ConditionType:    models.ConditionStreak,
			ConditionConfig:  models.JSONConfig(`{"weeks": 4}`),
			IconKey:          "flame",
		},
		{
			Slug:             "half-century",
			Name:             "Half Century",
			ShortDescription: "Complete 50 quizzes",
			Category:         "Activity",
			Rarity:           4,
			ConditionType:    models.ConditionPlayTotal,
			ConditionConfig:  models.JSONConfig(`{"count": 50}`),
			IconKey:          "medal",
		},
		{
			Slug:             "marathon-season",
			Name:             "Marathon Season",
			ShortDescription: "Stay active across 12 different weeks",
			Category:         "Streak",
			Rarity:           5,
			IsPremiumOnly:    true,
			ConditionType:    models.ConditionStreak,
			ConditionConfig:  models.JSONConfig(`{"weeks": 12}`),
			SeasonTag:        "season-1",
			IconKey:          "trophy",
			Series:           "marathon",
		},
		{
			// repeat_quiz has no evaluator; it is listed but only an external
			// award with quiz context can unlock it.
			Slug:             "old-favorite",
			Name:             "Old Favorite",
			ShortDescription: "Replay the same quiz five times",
			Category:         "Special",
			Rarity:           5,
			ConditionType:    models.ConditionRepeatQuiz,
			ConditionConfig:  models.JSONConfig(`{"count": 5}`),
			IconKey:          "repeat",
		},
	}

	if err := db.Create(&achievements).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d achievements", len(achievements))
	return nil
}

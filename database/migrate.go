// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"quizforge/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Achievement{},
		&models.QuizCompletion{},
		&models.UnlockRecord{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	if err := SeedAchievements(db); err != nil {
		log.Fatalf("❌ Failed to seed achievement catalog: %v", err)
	}

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the read paths depend on
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Achievement catalog is always listed in (rarity, name) order
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_rarity_name ON achievements(rarity, name)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_condition_type ON achievements(condition_type)")

	// Completion history is always read newest-first per user
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_completions_user_completed ON quiz_completions(user_id, completed_at DESC)")

	// Unlock records
	db.Exec("CREATE INDEX IF NOT EXISTS idx_unlock_records_user ON unlock_records(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_unlock_records_achievement ON unlock_records(achievement_id)")

	log.Println("✅ Indexes created successfully")
}

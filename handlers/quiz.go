// handlers/quiz.go
package handlers

import (
	"time"

	"quizforge/database"
	"quizforge/middleware"
	"quizforge/models"
	"quizforge/services"

	"github.com/gofiber/fiber/v2"
)

type CompleteQuizRequest struct {
	QuizSlug       string `json:"quiz_slug"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// CompleteQuiz records a finished quiz run and then runs the award step: any
// not-yet-unlocked achievement whose condition the new history satisfies gets
// its unlock record written, in the same transaction as the completion.
func CompleteQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CompleteQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.TotalQuestions <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "total_questions must be positive"})
	}
	if req.Score < 0 || req.Score > req.TotalQuestions {
		return c.Status(400).JSON(fiber.Map{"error": "score must be between 0 and total_questions"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	completion := models.QuizCompletion{
		UserID:         userID,
		QuizSlug:       req.QuizSlug,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		CompletedAt:    time.Now(),
	}

	newAchievements, err := services.RecordCompletion(db, &user, &completion)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record completion"})
	}

	if newAchievements == nil {
		newAchievements = []models.Achievement{}
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"completion_id":    completion.ID,
		"completed_at":     completion.CompletedAt,
		"is_perfect":       completion.Score == completion.TotalQuestions,
		"new_achievements": newAchievements,
	})
}

// GetQuizHistory returns the caller's recent completions, newest first.
func GetQuizHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > services.HistoryLimit {
		limit = 50
	}

	stores := services.NewGormStores(database.GetDB())
	completions, err := stores.ListCompletions(userID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"completions": completions,
		"count":       len(completions),
	})
}

// handlers/admin/achievements.go - Catalog management
package admin

import (
	"quizforge/database"
	"quizforge/models"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements returns the raw catalog in presentation order
func GetAchievements(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievements []models.Achievement
	if err := db.Order("rarity ASC, name ASC").Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{"success": true, "achievements": achievements})
}

// CreateAchievement creates a new catalog entry
func CreateAchievement(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievement models.Achievement
	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// Reject entries the evaluator could never decode. repeat_quiz is
	// allowed: it is listed but only unlocked by an external award.
	if _, err := models.ParseUnlockCondition(achievement.ConditionType, achievement.ConditionConfig); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if achievement.Slug == "" || achievement.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "slug and name are required"})
	}

	if err := db.Create(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "achievement": achievement})
}

// UpdateAchievement updates an existing catalog entry
func UpdateAchievement(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievement models.Achievement
	if err := db.First(&achievement, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	}

	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if _, err := models.ParseUnlockCondition(achievement.ConditionType, achievement.ConditionConfig); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := db.Save(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update achievement"})
	}

	return c.JSON(fiber.Map{"success": true, "achievement": achievement})
}

// DeleteAchievement removes a catalog entry. Existing unlock records keep
// their rows; the view simply stops listing the definition.
func DeleteAchievement(c *fiber.Ctx) error {
	db := database.GetDB()

	if err := db.Delete(&models.Achievement{}, c.Params("id")).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Achievement deleted successfully",
	})
}

// handlers/users.go
package handlers

import (
	"quizforge/database"
	"quizforge/middleware"
	"quizforge/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the authenticated user's profile and tier.
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfo(user),
		"tier":    user.Tier(),
	})
}

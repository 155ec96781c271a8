// models/completion.go
package models

import (
	"time"
)

// QuizCompletion is one finished quiz run. Append-only: the play endpoint
// writes it, the achievement engine reads it newest-first.
type QuizCompletion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"-"`
	QuizSlug       string    `gorm:"size:100;index" json:"quiz_slug,omitempty"`
	Score          int       `gorm:"default:0" json:"score"`
	TotalQuestions int       `gorm:"default:0" json:"total_questions"`
	CompletedAt    time.Time `gorm:"not null;index" json:"completed_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func (QuizCompletion) TableName() string {
	return "quiz_completions"
}

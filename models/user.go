// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsPremium   bool    `gorm:"default:false" json:"is_premium"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Timestamps
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login"`
	LastActivity *time.Time `json:"last_activity,omitempty"`

	// Relationships
	Completions []QuizCompletion `gorm:"foreignKey:UserID" json:"completions,omitempty"`
	Unlocks     []UnlockRecord   `gorm:"foreignKey:UserID" json:"unlocks,omitempty"`
}

// Tier is the caller's access level. Premium gates premium-only achievements;
// visitors (no account) can never hold an unlock.
type Tier string

const (
	TierVisitor Tier = "visitor"
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Tier maps an account to its access level. A nil user is a visitor.
func (u *User) Tier() Tier {
	if u == nil {
		return TierVisitor
	}
	if u.IsPremium {
		return TierPremium
	}
	return TierFree
}

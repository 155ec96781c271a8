// models/achievement.go
package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Achievement is a catalog entry describing one unlockable achievement.
// The catalog is maintained by content management; this service only reads it.
type Achievement struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	Slug             string        `gorm:"not null;uniqueIndex;size:100" json:"slug"`
	Name             string        `gorm:"not null" json:"name"`
	ShortDescription string        `gorm:"not null" json:"short_description"`
	LongDescription  string        `gorm:"type:text" json:"long_description,omitempty"`
	Category         string        `gorm:"not null;index;size:50" json:"category"` // Activity, Accuracy, Streak, Special
	Rarity           int           `gorm:"not null;default:0;index" json:"rarity"` // ordinal, drives default sort
	IsPremiumOnly    bool          `gorm:"default:false" json:"is_premium_only"`
	ConditionType    ConditionType `gorm:"not null;size:50;index" json:"condition_type"`
	ConditionConfig  JSONConfig    `gorm:"type:jsonb" json:"condition_config"`
	SeasonTag        string        `gorm:"size:50" json:"season_tag,omitempty"`
	IconKey          string        `gorm:"size:100" json:"icon_key"`
	Series           string        `gorm:"size:100" json:"series,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnlockRecord is the persisted unlock/progress state for one (user, achievement)
// pair. The award process writes it; the read path treats it as authoritative.
// Once UnlockedAt is set the achievement stays unlocked permanently.
type UnlockRecord struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index:idx_unlock_user_achievement,unique" json:"user_id"`
	AchievementID uint       `gorm:"not null;index:idx_unlock_user_achievement,unique" json:"achievement_id"`
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
	ProgressValue *int       `json:"progress_value,omitempty"`
	ProgressMax   *int       `json:"progress_max,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

// AchievementStatus is the per-user state of one catalog entry.
type AchievementStatus string

const (
	StatusUnlocked      AchievementStatus = "unlocked"
	StatusLockedPremium AchievementStatus = "locked_premium"
	StatusLockedFree    AchievementStatus = "locked_free"
)

// AchievementView is the response shape for GET /api/achievements: the full
// catalog entry merged with the caller's unlock status and progress. Computed
// per request, never persisted.
type AchievementView struct {
	Achievement
	Status        AchievementStatus `json:"status"`
	UnlockedAt    *time.Time        `json:"unlocked_at,omitempty"`
	ProgressValue *int              `json:"progress_value,omitempty"`
	ProgressMax   *int              `json:"progress_max,omitempty"`
}

// JSONConfig stores the per-condition-type configuration blob as jsonb.
type JSONConfig []byte

func (c JSONConfig) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "{}", nil
	}
	return string(c), nil
}

func (c *JSONConfig) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
	case []byte:
		*c = append((*c)[:0], v...)
	case string:
		*c = JSONConfig(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONConfig", value)
	}
	return nil
}

func (c JSONConfig) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

func (c *JSONConfig) UnmarshalJSON(data []byte) error {
	*c = append((*c)[:0], data...)
	return nil
}

func (Achievement) TableName() string {
	return "achievements"
}

func (UnlockRecord) TableName() string {
	return "unlock_records"
}

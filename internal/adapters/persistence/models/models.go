package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Dashboard sessions
// ============================================================

// Session represents dashboard_sessions table. The key is stored hashed and
// the payload sealed, so a leaked row reveals neither.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	KeyHash   string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	Payload   []byte    `gorm:"type:blob;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Session) TableName() string {
	return "dashboard_sessions"
}

// AutoMigrate creates the dashboard's own tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Session{},
	)
}

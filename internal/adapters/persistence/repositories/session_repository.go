package repositories

import (
	"context"
	"errors"
	"time"

	"susu-dashboard/internal/adapters/persistence/models"
	"susu-dashboard/internal/core/session"
	"susu-dashboard/internal/pkg/secret"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Get gets an unexpired session blob by its key
func (r *sessionRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var row models.Session
	err := r.db.WithContext(ctx).
		Where("key_hash = ?", secret.HashToken(key)).
		Where("expires_at > ?", time.Now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Payload, nil
}

// Set creates or replaces a session blob
func (r *sessionRepository) Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error {
	row := models.Session{
		KeyHash:   secret.HashToken(key),
		Payload:   value,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
		}).
		Create(&row).Error
}

// Clear deletes a session blob
func (r *sessionRepository) Clear(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key_hash = ?", secret.HashToken(key)).
		Delete(&models.Session{}).Error
}

// Purge deletes all expired sessions (cleanup job)
func (r *sessionRepository) Purge(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// Ping checks the database connection
func (r *sessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

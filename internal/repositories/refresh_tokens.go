package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"medflow-server/internal/models"
)

// RefreshTokenRepository is the persistence contract for issued refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindActive(ctx context.Context, token string, userID string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token *models.RefreshToken) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepository) FindActive(ctx context.Context, token string, userID string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?",
			token, userID, false, time.Now()).
		First(&stored).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &stored, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, token *models.RefreshToken) error {
	token.IsRevoked = true
	return r.db.WithContext(ctx).Save(token).Error
}

var _ RefreshTokenRepository = (*refreshTokenRepository)(nil)

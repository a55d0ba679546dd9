package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/infrastructure/persistence/models"
	"github.com/tna76874/docdepot/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTokenRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTokenRepository creates a new GORM-based TokenRepository implementation
func NewGormTokenRepository(db *gorm.DB, logger logger.Logger) (tokens.TokenRepository, error) {
	return &gormTokenRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTokenRepository) Create(ctx context.Context, token *tokens.Token) error {
	if err := token.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TokenModel{}
	model.FromDomain(token)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	// The database assigns the numeric id.
	token.ID = model.ID

	r.logger.Info("Created token for document ", token.DocumentID)
	return nil
}

func (r *gormTokenRepository) GetByValue(ctx context.Context, value string) (*tokens.Token, error) {
	var model models.TokenModel
	if err := r.db.WithContext(ctx).Where("value = ?", value).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tokens.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTokenRepository) ListByDocument(ctx context.Context, documentID string) ([]*tokens.Token, error) {
	var modelList []*models.TokenModel
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tokens of document %s: %w", documentID, err)
	}

	domainList := make([]*tokens.Token, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormTokenRepository) DeleteByValue(ctx context.Context, value string) error {
	result := r.db.WithContext(ctx).Where("value = ?", value).Delete(&models.TokenModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tokens.ErrTokenNotFound
	}

	r.logger.Info("Deleted token ", value)
	return nil
}

func (r *gormTokenRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&models.TokenModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete tokens of document %s: %w", documentID, err)
	}

	r.logger.Info("Deleted tokens of document ", documentID)
	return nil
}

func (r *gormTokenRepository) UpdateValidUntil(ctx context.Context, value string, validUntil time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.TokenModel{}).
		Where("value = ?", value).
		Update("valid_until", validUntil)
	if result.Error != nil {
		return fmt.Errorf("failed to update token validity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tokens.ErrTokenNotFound
	}

	r.logger.Info("Updated validity of token ", value)
	return nil
}

func (r *gormTokenRepository) ListExpired(ctx context.Context, now time.Time) ([]*tokens.Token, error) {
	var modelList []*models.TokenModel
	if err := r.db.WithContext(ctx).Where("valid_until < ?", now).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expired tokens: %w", err)
	}

	domainList := make([]*tokens.Token, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormTokenRepository) CountByDocument(ctx context.Context, documentID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TokenModel{}).
		Where("document_id = ?", documentID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tokens of document %s: %w", documentID, err)
	}
	return count, nil
}

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

type gormAccessEventRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAccessEventRepository creates a new GORM-based AccessEventRepository implementation
func NewGormAccessEventRepository(db *gorm.DB, logger logger.Logger) (tokens.AccessEventRepository, error) {
	return &gormAccessEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAccessEventRepository) Record(ctx context.Context, tokenID uint) error {
	model := &models.AccessEventModel{
		TokenID:    tokenID,
		OccurredAt: time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record access event: %w", err)
	}

	r.logger.Info("Recorded access event for token id ", tokenID)
	return nil
}

func (r *gormAccessEventRepository) CountByToken(ctx context.Context, tokenID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccessEventModel{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count access events: %w", err)
	}
	return count, nil
}

func (r *gormAccessEventRepository) FirstByToken(ctx context.Context, tokenID uint) (*time.Time, error) {
	var model models.AccessEventModel
	err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("occurred_at asc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch first access event: %w", err)
	}
	return &model.OccurredAt, nil
}

func (r *gormAccessEventRepository) EarliestForDocument(ctx context.Context, documentID string) (*time.Time, error) {
	var model models.AccessEventModel
	err := r.db.WithContext(ctx).
		Joins("JOIN tokens ON tokens.id = access_events.token_id").
		Where("tokens.document_id = ?", documentID).
		Order("access_events.occurred_at asc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch earliest access event: %w", err)
	}
	return &model.OccurredAt, nil
}

func (r *gormAccessEventRepository) ListAll(ctx context.Context) ([]*tokens.AccessEvent, error) {
	var modelList []*models.AccessEventModel
	if err := r.db.WithContext(ctx).Order("occurred_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch access events: %w", err)
	}

	domainList := make([]*tokens.AccessEvent, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormAccessEventRepository) DeleteByToken(ctx context.Context, tokenID uint) error {
	if err := r.db.WithContext(ctx).Where("token_id = ?", tokenID).Delete(&models.AccessEventModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete access events of token id %d: %w", tokenID, err)
	}

	r.logger.Info("Deleted access events of token id ", tokenID)
	return nil
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/users"
	"github.com/tna76874/docdepot/internal/infrastructure/persistence/models"
	"github.com/tna76874/docdepot/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) EnsureExists(ctx context.Context, uid string) error {
	user := &users.User{
		UID:        uid,
		ValidUntil: time.Now().Add(users.DefaultValidity),
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	// Existing users keep their expiry date.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", uid, err)
	}

	return nil
}

func (r *gormUserRepository) GetByUID(ctx context.Context, uid string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) List(ctx context.Context) ([]*users.User, error) {
	var modelList []*models.UserModel
	if err := r.db.WithContext(ctx).Order("uid asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	domainList := make([]*users.User, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormUserRepository) DeleteByUID(ctx context.Context, uid string) error {
	result := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.UserModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return users.ErrUserNotFound
	}

	r.logger.Info("Deleted user ", uid)
	return nil
}

func (r *gormUserRepository) Rename(ctx context.Context, oldUID, newUID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserModel{}).
			Where("uid = ?", oldUID).
			Update("uid", newUID)
		if result.Error != nil {
			return fmt.Errorf("failed to rename user %s: %w", oldUID, result.Error)
		}
		if result.RowsAffected == 0 {
			return users.ErrUserNotFound
		}

		// SQLite does not propagate the update through the foreign key.
		if err := tx.Model(&models.DocumentModel{}).
			Where("user_uid = ?", oldUID).
			Update("user_uid", newUID).Error; err != nil {
			return fmt.Errorf("failed to move documents of user %s: %w", oldUID, err)
		}

		return nil
	})
}

func (r *gormUserRepository) UpdateValidUntil(ctx context.Context, uid string, validUntil time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("uid = ?", uid).
		Update("valid_until", validUntil)
	if result.Error != nil {
		return fmt.Errorf("failed to update user validity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return users.ErrUserNotFound
	}

	r.logger.Info("Updated validity of user ", uid)
	return nil
}

func (r *gormUserRepository) UpdateAllValidUntil(ctx context.Context, validUntil time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("1 = 1").
		Update("valid_until", validUntil).Error
	if err != nil {
		return fmt.Errorf("failed to update validity of all users: %w", err)
	}

	r.logger.Info("Updated validity of all users")
	return nil
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/infrastructure/persistence/models"
	"github.com/tna76874/docdepot/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormDocumentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDocumentRepository creates a new GORM-based DocumentRepository implementation
func NewGormDocumentRepository(db *gorm.DB, logger logger.Logger) (documents.DocumentRepository, error) {
	return &gormDocumentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDocumentRepository) Create(ctx context.Context, document *documents.Document) error {
	// Validate domain entity (business rules)
	if err := document.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.DocumentModel{}
	model.FromDomain(document)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	r.logger.Info("Created document metadata with id ", document.ID)
	return nil
}

func (r *gormDocumentRepository) List(ctx context.Context, query *documents.DocumentQuery) ([]*documents.Document, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.DocumentModel
	dbQuery := r.db.WithContext(ctx).Model(&models.DocumentModel{})

	// Apply filters
	if query.UserUID != "" {
		dbQuery = dbQuery.Where("user_uid = ?", query.UserUID)
	}
	if !query.UploadedAfter.IsZero() {
		dbQuery = dbQuery.Where("uploaded_at >= ?", query.UploadedAfter)
	}

	// Sorting
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	// Convert to domain models
	domainList := make([]*documents.Document, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormDocumentRepository) GetByID(ctx context.Context, documentID string) (*documents.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).Where("id = ?", documentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documents.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormDocumentRepository) ListByUser(ctx context.Context, userUID string) ([]*documents.Document, error) {
	var modelList []*models.DocumentModel
	if err := r.db.WithContext(ctx).Where("user_uid = ?", userUID).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents of user %s: %w", userUID, err)
	}

	domainList := make([]*documents.Document, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormDocumentRepository) DeleteByID(ctx context.Context, documentID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", documentID).Delete(&models.DocumentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	r.logger.Info("Deleted document metadata with id ", documentID)
	return nil
}

func (r *gormDocumentRepository) ListStaleWithoutAccess(ctx context.Context, cutoff time.Time) ([]*documents.Document, error) {
	// A document is stale when it predates the cutoff and none of its
	// tokens ever recorded an access event.
	var modelList []*models.DocumentModel
	err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("uploaded_at < ?", cutoff).
		Where("id NOT IN (?)",
			r.db.Model(&models.TokenModel{}).
				Select("tokens.document_id").
				Joins("JOIN access_events ON access_events.token_id = tokens.id"),
		).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stale documents: %w", err)
	}

	domainList := make([]*documents.Document, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

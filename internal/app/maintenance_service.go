package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/pkg/logger"
)

// maintenanceService implements the startup cleanup operations
type maintenanceService struct {
	documentRepository    documents.DocumentRepository
	documentStore         documents.DocumentStore
	tokenRepository       tokens.TokenRepository
	accessEventRepository tokens.AccessEventRepository
	logger                logger.Logger
}

// NewMaintenanceService creates a new instance of MaintenanceService
func NewMaintenanceService(
	documentRepository documents.DocumentRepository,
	documentStore documents.DocumentStore,
	tokenRepository tokens.TokenRepository,
	accessEventRepository tokens.AccessEventRepository,
	logger logger.Logger,
) (documents.MaintenanceService, error) {
	return &maintenanceService{
		documentRepository:    documentRepository,
		documentStore:         documentStore,
		tokenRepository:       tokenRepository,
		accessEventRepository: accessEventRepository,
		logger:                logger,
	}, nil
}

// DeleteExpired drops expired tokens first, then every document left
// without a single token, including its stored file.
func (s *maintenanceService) DeleteExpired(ctx context.Context) error {
	expired, err := s.tokenRepository.ListExpired(ctx, time.Now())
	if err != nil {
		return err
	}

	affected := make(map[string]struct{})
	for _, token := range expired {
		if err := s.accessEventRepository.DeleteByToken(ctx, token.ID); err != nil {
			return err
		}
		if err := s.tokenRepository.DeleteByValue(ctx, token.Value); err != nil {
			return err
		}
		affected[token.DocumentID] = struct{}{}
	}

	for documentID := range affected {
		count, err := s.tokenRepository.CountByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := purgeDocument(ctx, s.documentRepository, s.documentStore, s.tokenRepository, s.accessEventRepository, documentID); err != nil {
			return fmt.Errorf("failed to purge orphaned document %s: %w", documentID, err)
		}
		s.logger.Info("Removed document ", documentID, " after its last token expired")
	}

	s.logger.Info("Expired token cleanup removed ", len(expired), " tokens")
	return nil
}

// DeleteStale drops documents that never recorded an access event
// within the retention window after upload.
func (s *maintenanceService) DeleteStale(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	stale, err := s.documentRepository.ListStaleWithoutAccess(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, document := range stale {
		if err := purgeDocument(ctx, s.documentRepository, s.documentStore, s.tokenRepository, s.accessEventRepository, document.ID); err != nil {
			return fmt.Errorf("failed to purge stale document %s: %w", document.ID, err)
		}
		s.logger.Info("Removed stale document ", document.ID)
	}

	return nil
}

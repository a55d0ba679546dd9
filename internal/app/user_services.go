package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"
	"github.com/tna76874/docdepot/internal/pkg/logger"
)

// userService implements the UserService interface for administrative user operations
type userService struct {
	userRepository        users.UserRepository
	documentRepository    documents.DocumentRepository
	documentStore         documents.DocumentStore
	tokenRepository       tokens.TokenRepository
	accessEventRepository tokens.AccessEventRepository
	logger                logger.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepository users.UserRepository,
	documentRepository documents.DocumentRepository,
	documentStore documents.DocumentStore,
	tokenRepository tokens.TokenRepository,
	accessEventRepository tokens.AccessEventRepository,
	logger logger.Logger,
) (users.UserService, error) {
	return &userService{
		userRepository:        userRepository,
		documentRepository:    documentRepository,
		documentStore:         documentStore,
		tokenRepository:       tokenRepository,
		accessEventRepository: accessEventRepository,
		logger:                logger,
	}, nil
}

// DeleteByUID removes a user and everything hanging off them: the
// documents, their tokens, access events and stored files.
func (s *userService) DeleteByUID(ctx context.Context, uid string) error {
	documentList, err := s.documentRepository.ListByUser(ctx, uid)
	if err != nil {
		return err
	}

	for _, document := range documentList {
		if err := purgeDocument(ctx, s.documentRepository, s.documentStore, s.tokenRepository, s.accessEventRepository, document.ID); err != nil {
			return fmt.Errorf("failed to purge document %s of user %s: %w", document.ID, uid, err)
		}
	}

	return s.userRepository.DeleteByUID(ctx, uid)
}

func (s *userService) Rename(ctx context.Context, mapping map[string]string) error {
	for oldUID, newUID := range mapping {
		if err := s.userRepository.Rename(ctx, oldUID, newUID); err != nil {
			return fmt.Errorf("failed to rename user %s to %s: %w", oldUID, newUID, err)
		}
		s.logger.Info("Renamed user ", oldUID, " to ", newUID)
	}
	return nil
}

func (s *userService) UpdateValidUntil(ctx context.Context, uid string, validUntil time.Time) error {
	return s.userRepository.UpdateValidUntil(ctx, uid, validUntil)
}

func (s *userService) UpdateAllValidUntil(ctx context.Context, validUntil time.Time) error {
	return s.userRepository.UpdateAllValidUntil(ctx, validUntil)
}

func (s *userService) AverageTimeForAllUsers(ctx context.Context) (map[string]*time.Duration, error) {
	userList, err := s.userRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*time.Duration, len(userList))
	for _, user := range userList {
		average, err := averageTimeForUser(ctx, s.documentRepository, s.accessEventRepository, user.UID)
		if err != nil {
			return nil, err
		}
		result[user.UID] = average
	}

	return result, nil
}

func (s *userService) List(ctx context.Context) ([]*users.User, error) {
	return s.userRepository.List(ctx)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/pkg/logger"

	"github.com/google/uuid"
)

// tokenService implements the TokenService interface for administrative token operations
type tokenService struct {
	tokenRepository       tokens.TokenRepository
	documentRepository    documents.DocumentRepository
	accessEventRepository tokens.AccessEventRepository
	logger                logger.Logger
}

// NewTokenService creates a new instance of TokenService
func NewTokenService(
	tokenRepository tokens.TokenRepository,
	documentRepository documents.DocumentRepository,
	accessEventRepository tokens.AccessEventRepository,
	logger logger.Logger,
) (tokens.TokenService, error) {
	return &tokenService{
		tokenRepository:       tokenRepository,
		documentRepository:    documentRepository,
		accessEventRepository: accessEventRepository,
		logger:                logger,
	}, nil
}

func (s *tokenService) Issue(ctx context.Context, documentID string) (string, error) {
	// The document must exist before a token can point at it.
	if _, err := s.documentRepository.GetByID(ctx, documentID); err != nil {
		return "", err
	}

	now := time.Now()
	token := &tokens.Token{
		DocumentID: documentID,
		Value:      uuid.NewString(),
		CreatedAt:  now,
		ValidUntil: now.Add(tokens.DefaultValidity),
	}

	if err := s.tokenRepository.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token.Value, nil
}

func (s *tokenService) DeleteByValue(ctx context.Context, value string) error {
	token, err := s.tokenRepository.GetByValue(ctx, value)
	if err != nil {
		return err
	}

	if err := s.accessEventRepository.DeleteByToken(ctx, token.ID); err != nil {
		return err
	}

	return s.tokenRepository.DeleteByValue(ctx, value)
}

func (s *tokenService) UpdateValidUntil(ctx context.Context, value string, validUntil time.Time) error {
	return s.tokenRepository.UpdateValidUntil(ctx, value, validUntil)
}

// CheckValidity reports per value whether the token grants access
// right now. Unknown tokens map to false.
func (s *tokenService) CheckValidity(ctx context.Context, values []string) (map[string]bool, error) {
	now := time.Now()
	result := make(map[string]bool, len(values))

	for _, value := range values {
		token, err := s.tokenRepository.GetByValue(ctx, value)
		if err != nil {
			if errors.Is(err, tokens.ErrTokenNotFound) {
				result[value] = false
				continue
			}
			return nil, err
		}
		result[value] = token.IsValidAt(now)
	}

	return result, nil
}

// tokenInfoService computes the access statistics shown on the status page
type tokenInfoService struct {
	tokenRepository       tokens.TokenRepository
	documentRepository    documents.DocumentRepository
	accessEventRepository tokens.AccessEventRepository
	logger                logger.Logger
}

// NewTokenInfoService creates a new instance of TokenInfoService
func NewTokenInfoService(
	tokenRepository tokens.TokenRepository,
	documentRepository documents.DocumentRepository,
	accessEventRepository tokens.AccessEventRepository,
	logger logger.Logger,
) (tokens.TokenInfoService, error) {
	return &tokenInfoService{
		tokenRepository:       tokenRepository,
		documentRepository:    documentRepository,
		accessEventRepository: accessEventRepository,
		logger:                logger,
	}, nil
}

func (s *tokenInfoService) InfoByValue(ctx context.Context, value string) (*tokens.TokenInfo, error) {
	token, err := s.tokenRepository.GetByValue(ctx, value)
	if err != nil {
		return nil, err
	}

	count, err := s.accessEventRepository.CountByToken(ctx, token.ID)
	if err != nil {
		return nil, err
	}

	firstAccess, err := s.accessEventRepository.FirstByToken(ctx, token.ID)
	if err != nil {
		return nil, err
	}

	document, err := s.documentRepository.GetByID(ctx, token.DocumentID)
	if err != nil {
		return nil, err
	}

	averageTime, err := averageTimeForUser(ctx, s.documentRepository, s.accessEventRepository, document.UserUID)
	if err != nil {
		return nil, err
	}

	return &tokens.TokenInfo{
		AccessCount: count,
		FirstAccess: firstAccess,
		AverageTime: averageTime,
	}, nil
}

// accessEventService exposes the raw access log
type accessEventService struct {
	accessEventRepository tokens.AccessEventRepository
	logger                logger.Logger
}

// NewAccessEventService creates a new instance of AccessEventService
func NewAccessEventService(
	accessEventRepository tokens.AccessEventRepository,
	logger logger.Logger,
) (tokens.AccessEventService, error) {
	return &accessEventService{
		accessEventRepository: accessEventRepository,
		logger:                logger,
	}, nil
}

// ListEvents dumps every access event for administrative inspection.
func (s *accessEventService) ListEvents(ctx context.Context) ([]*tokens.AccessEvent, error) {
	return s.accessEventRepository.ListAll(ctx)
}

// averageTimeForUser computes the mean span between upload and first
// access over all documents of one user. Documents that were never
// retrieved contribute nothing to the sum but still count in the
// denominator. Without a single access the result is nil.
func averageTimeForUser(
	ctx context.Context,
	documentRepository documents.DocumentRepository,
	accessEventRepository tokens.AccessEventRepository,
	userUID string,
) (*time.Duration, error) {
	documentList, err := documentRepository.ListByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if len(documentList) == 0 {
		return nil, nil
	}

	var total time.Duration
	for _, document := range documentList {
		earliest, err := accessEventRepository.EarliestForDocument(ctx, document.ID)
		if err != nil {
			return nil, err
		}
		if earliest != nil {
			total += earliest.Sub(document.UploadedAt)
		}
	}

	if total <= 0 {
		return nil, nil
	}

	average := total / time.Duration(len(documentList))
	return &average, nil
}

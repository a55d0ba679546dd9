package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/classify"
	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"
	"github.com/tna76874/docdepot/internal/pkg/logger"

	"github.com/google/uuid"
)

// documentUploadService implements the DocumentUploadService interface for handling depositions
type documentUploadService struct {
	userRepository     users.UserRepository
	documentRepository documents.DocumentRepository
	documentStore      documents.DocumentStore
	tokenService       tokens.TokenService
	pipeline           *classify.Pipeline
	logger             logger.Logger
}

// NewDocumentUploadService creates a new instance of DocumentUploadService
func NewDocumentUploadService(
	userRepository users.UserRepository,
	documentRepository documents.DocumentRepository,
	documentStore documents.DocumentStore,
	tokenService tokens.TokenService,
	pipeline *classify.Pipeline,
	logger logger.Logger,
) (documents.DocumentUploadService, error) {
	return &documentUploadService{
		userRepository:     userRepository,
		documentRepository: documentRepository,
		documentStore:      documentStore,
		tokenService:       tokenService,
		pipeline:           pipeline,
		logger:             logger,
	}, nil
}

// Upload registers a document, stores its file, verifies the client
// checksum, runs the validation pipeline and issues the first access
// token. The validation report is advisory; only a failed checksum
// verification undoes the deposition. The client checksum is
// mandatory.
func (s *documentUploadService) Upload(ctx context.Context, req *documents.UploadRequest) (*documents.UploadReceipt, error) {
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("no file content provided in upload request")
	}

	// The owner is created implicitly on first deposition.
	if err := s.userRepository.EnsureExists(ctx, req.UserUID); err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	digest := sha256.Sum256(req.Data)
	now := time.Now()

	document := &documents.Document{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Filename:   req.Filename,
		UserUID:    req.UserUID,
		UploadedAt: now,
		ValidUntil: now.Add(documents.DefaultValidity),
		Checksum:   hex.EncodeToString(digest[:]),
		Size:       int64(len(req.Data)),
	}

	if err := s.documentRepository.Create(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if err := s.documentStore.Save(ctx, document.ID, req.Data); err != nil {
		if deleteErr := s.documentRepository.DeleteByID(ctx, document.ID); deleteErr != nil {
			s.logger.Error("failed to roll back document ", document.ID, ": ", deleteErr)
		}
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	// Verify what actually landed on disk against the client's digest.
	// A missing checksum never matches, so checksum-less depositions
	// are rejected too.
	stored, err := s.documentStore.Checksum(ctx, document.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stored checksum: %w", err)
	}
	if stored != req.Checksum {
		s.logger.Warn("checksum mismatch for document ", document.ID, ", removing deposition")
		if err := s.documentStore.Delete(ctx, document.ID); err != nil {
			s.logger.Error("failed to delete stored file of document ", document.ID, ": ", err)
		}
		if err := s.documentRepository.DeleteByID(ctx, document.ID); err != nil {
			s.logger.Error("failed to delete document ", document.ID, ": ", err)
		}
		return nil, documents.ErrChecksumMismatch
	}

	report := s.pipeline.Run(ctx, classify.NewArtifact(req.Filename, req.Data))
	if !report.Passed() {
		s.logger.Warn("validation checks flagged document ", document.ID)
	}

	tokenValue, err := s.tokenService.Issue(ctx, document.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Deposited document ", document.ID, " for user ", req.UserUID)

	return &documents.UploadReceipt{
		Document:   document,
		TokenValue: tokenValue,
		Checks:     report,
	}, nil
}

// documentRetrievalService implements the tokenized read path
type documentRetrievalService struct {
	documentRepository    documents.DocumentRepository
	documentStore         documents.DocumentStore
	tokenRepository       tokens.TokenRepository
	accessEventRepository tokens.AccessEventRepository
	logger                logger.Logger
}

// NewDocumentRetrievalService creates a new instance of DocumentRetrievalService
func NewDocumentRetrievalService(
	documentRepository documents.DocumentRepository,
	documentStore documents.DocumentStore,
	tokenRepository tokens.TokenRepository,
	accessEventRepository tokens.AccessEventRepository,
	logger logger.Logger,
) (documents.DocumentRetrievalService, error) {
	return &documentRetrievalService{
		documentRepository:    documentRepository,
		documentStore:         documentStore,
		tokenRepository:       tokenRepository,
		accessEventRepository: accessEventRepository,
		logger:                logger,
	}, nil
}

func (s *documentRetrievalService) Resolve(ctx context.Context, tokenValue string) (*documents.Document, *tokens.Token, error) {
	token, err := s.tokenRepository.GetByValue(ctx, tokenValue)
	if err != nil {
		return nil, nil, err
	}

	document, err := s.documentRepository.GetByID(ctx, token.DocumentID)
	if err != nil {
		return nil, nil, err
	}

	return document, token, nil
}

// Fetch serves the file behind a valid token and records the access.
func (s *documentRetrievalService) Fetch(ctx context.Context, tokenValue string) (*documents.Document, []byte, error) {
	document, token, err := s.Resolve(ctx, tokenValue)
	if err != nil {
		return nil, nil, err
	}

	if !token.IsValidAt(time.Now()) {
		return nil, nil, tokens.ErrTokenExpired
	}

	data, err := s.documentStore.Open(ctx, document.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.accessEventRepository.Record(ctx, token.ID); err != nil {
		// The retrieval already succeeded; a lost event only skews the
		// statistics.
		s.logger.Error("failed to record access event for token ", tokenValue, ": ", err)
	}

	return document, data, nil
}

// documentMetadataService implements administrative listings and deletions
type documentMetadataService struct {
	documentRepository    documents.DocumentRepository
	documentStore         documents.DocumentStore
	tokenRepository       tokens.TokenRepository
	accessEventRepository tokens.AccessEventRepository
	logger                logger.Logger
}

// NewDocumentMetadataService creates a new instance of DocumentMetadataService
func NewDocumentMetadataService(
	documentRepository documents.DocumentRepository,
	documentStore documents.DocumentStore,
	tokenRepository tokens.TokenRepository,
	accessEventRepository tokens.AccessEventRepository,
	logger logger.Logger,
) (documents.DocumentMetadataService, error) {
	return &documentMetadataService{
		documentRepository:    documentRepository,
		documentStore:         documentStore,
		tokenRepository:       tokenRepository,
		accessEventRepository: accessEventRepository,
		logger:                logger,
	}, nil
}

func (s *documentMetadataService) List(ctx context.Context, query *documents.DocumentQuery) ([]*documents.Document, error) {
	return s.documentRepository.List(ctx, query)
}

func (s *documentMetadataService) GetByID(ctx context.Context, documentID string) (*documents.Document, error) {
	return s.documentRepository.GetByID(ctx, documentID)
}

func (s *documentMetadataService) DeleteByID(ctx context.Context, documentID string) error {
	return purgeDocument(ctx, s.documentRepository, s.documentStore, s.tokenRepository, s.accessEventRepository, documentID)
}

// purgeDocument removes a document together with its tokens, their
// access events and the stored file.
func purgeDocument(
	ctx context.Context,
	documentRepository documents.DocumentRepository,
	documentStore documents.DocumentStore,
	tokenRepository tokens.TokenRepository,
	accessEventRepository tokens.AccessEventRepository,
	documentID string,
) error {
	tokenList, err := tokenRepository.ListByDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to list tokens of document %s: %w", documentID, err)
	}

	for _, token := range tokenList {
		if err := accessEventRepository.DeleteByToken(ctx, token.ID); err != nil {
			return err
		}
	}

	if err := tokenRepository.DeleteByDocument(ctx, documentID); err != nil {
		return err
	}

	if err := documentStore.Delete(ctx, documentID); err != nil {
		return err
	}

	return documentRepository.DeleteByID(ctx, documentID)
}

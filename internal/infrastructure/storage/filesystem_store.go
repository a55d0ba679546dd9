package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/pkg/logger"
)

type filesystemStore struct {
	baseDir string
	logger  logger.Logger
}

// NewFilesystemStore creates a DocumentStore backed by a local
// directory. Files are named by document ID, one file per document.
func NewFilesystemStore(baseDir string, logger logger.Logger) (documents.DocumentStore, error) {
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create document directory %s: %w", baseDir, err)
	}

	return &filesystemStore{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// path maps a document ID to its on-disk location. IDs are uuid4
// strings, so no path traversal is possible past entity validation,
// but the base name is enforced regardless.
func (s *filesystemStore) path(documentID string) string {
	return filepath.Join(s.baseDir, filepath.Base(documentID))
}

func (s *filesystemStore) Save(ctx context.Context, documentID string, data []byte) error {
	if err := os.WriteFile(s.path(documentID), data, 0640); err != nil {
		return fmt.Errorf("failed to store document %s: %w", documentID, err)
	}

	s.logger.Info("Stored file for document ", documentID)
	return nil
}

func (s *filesystemStore) Open(ctx context.Context, documentID string) ([]byte, error) {
	data, err := os.ReadFile(s.path(documentID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, documents.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read document %s: %w", documentID, err)
	}
	return data, nil
}

func (s *filesystemStore) Delete(ctx context.Context, documentID string) error {
	err := os.Remove(s.path(documentID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}

	s.logger.Info("Deleted file for document ", documentID)
	return nil
}

func (s *filesystemStore) Checksum(ctx context.Context, documentID string) (string, error) {
	data, err := s.Open(ctx, documentID)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}

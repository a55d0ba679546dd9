//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockDocumentUploadService is a mock implementation of DocumentUploadService
type MockDocumentUploadService struct {
	mock.Mock
}

func (m *MockDocumentUploadService) Upload(ctx context.Context, req *documents.UploadRequest) (*documents.UploadReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.UploadReceipt), args.Error(1)
}

// MockDocumentRetrievalService is a mock implementation of DocumentRetrievalService
type MockDocumentRetrievalService struct {
	mock.Mock
}

func (m *MockDocumentRetrievalService) Resolve(ctx context.Context, tokenValue string) (*documents.Document, *tokens.Token, error) {
	args := m.Called(ctx, tokenValue)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*documents.Document), args.Get(1).(*tokens.Token), args.Error(2)
}

func (m *MockDocumentRetrievalService) Fetch(ctx context.Context, tokenValue string) (*documents.Document, []byte, error) {
	args := m.Called(ctx, tokenValue)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*documents.Document), args.Get(1).([]byte), args.Error(2)
}

// MockDocumentMetadataService is a mock implementation of DocumentMetadataService
type MockDocumentMetadataService struct {
	mock.Mock
}

func (m *MockDocumentMetadataService) List(ctx context.Context, query *documents.DocumentQuery) ([]*documents.Document, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.Document), args.Error(1)
}

func (m *MockDocumentMetadataService) GetByID(ctx context.Context, documentID string) (*documents.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockDocumentMetadataService) DeleteByID(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockTokenService is a mock implementation of TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) DeleteByValue(ctx context.Context, value string) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockTokenService) UpdateValidUntil(ctx context.Context, value string, validUntil time.Time) error {
	args := m.Called(ctx, value, validUntil)
	return args.Error(0)
}

func (m *MockTokenService) CheckValidity(ctx context.Context, values []string) (map[string]bool, error) {
	args := m.Called(ctx, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockTokenInfoService is a mock implementation of TokenInfoService
type MockTokenInfoService struct {
	mock.Mock
}

func (m *MockTokenInfoService) InfoByValue(ctx context.Context, value string) (*tokens.TokenInfo, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokens.TokenInfo), args.Error(1)
}

// MockAccessEventService is a mock implementation of AccessEventService
type MockAccessEventService struct {
	mock.Mock
}

func (m *MockAccessEventService) ListEvents(ctx context.Context) ([]*tokens.AccessEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tokens.AccessEvent), args.Error(1)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) DeleteByUID(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockUserService) Rename(ctx context.Context, mapping map[string]string) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockUserService) UpdateValidUntil(ctx context.Context, uid string, validUntil time.Time) error {
	args := m.Called(ctx, uid, validUntil)
	return args.Error(0)
}

func (m *MockUserService) UpdateAllValidUntil(ctx context.Context, validUntil time.Time) error {
	args := m.Called(ctx, validUntil)
	return args.Error(0)
}

func (m *MockUserService) AverageTimeForAllUsers(ctx context.Context) (map[string]*time.Duration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*time.Duration), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]*users.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.User), args.Error(1)
}

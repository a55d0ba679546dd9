//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tna76874/docdepot/internal/domain/tokens"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newJSONRequest(method, path, body string) *http.Request {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestTokenHandler_Issue_Success(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockAccessEventService := new(MockAccessEventService)

	handler := NewTokenHandler(mockTokenService, mockAccessEventService)

	mockTokenService.On("Issue", mock.Anything, "2b1f4a60-9f3e-4f0a-9a43-6cc82d3a1c2f").
		Return("6e1c1d2d-7a25-47b8-8a2f-4c6f0e3b9f11", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/tokens", `{"did": "2b1f4a60-9f3e-4f0a-9a43-6cc82d3a1c2f"}`)

	handler.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "6e1c1d2d-7a25-47b8-8a2f-4c6f0e3b9f11")
	mockTokenService.AssertExpectations(t)
}

func TestTokenHandler_Issue_InvalidBody_Error(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockAccessEventService := new(MockAccessEventService)

	handler := NewTokenHandler(mockTokenService, mockAccessEventService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/tokens", `{"did": "not-a-uuid"}`)

	handler.Issue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestTokenHandler_DeleteByValue_NotFound(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockAccessEventService := new(MockAccessEventService)

	handler := NewTokenHandler(mockTokenService, mockAccessEventService)

	mockTokenService.On("DeleteByValue", mock.Anything, "missing").Return(tokens.ErrTokenNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/tokens/missing", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "value", Value: "missing"}}

	handler.DeleteByValue(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "token not found")
}

func TestTokenHandler_UpdateValidity_Success(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockAccessEventService := new(MockAccessEventService)

	handler := NewTokenHandler(mockTokenService, mockAccessEventService)

	expected, err := time.Parse(datetimeLayout, "2026-12-24 12:00:00")
	assert.NoError(t, err)

	mockTokenService.On("UpdateValidUntil", mock.Anything, "tok-1", expected).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("PUT", "/tokens/tok-1/validity", `{"valid_until": "2026-12-24 12:00:00"}`)
	c.Params = gin.Params{{Key: "value", Value: "tok-1"}}

	handler.UpdateValidity(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockTokenService.AssertExpectations(t)
}

func TestTokenHandler_UpdateValidity_BadDatetime_Error(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockAccessEventService := new(MockAccessEventService)

	handler := NewTokenHandler(mockTokenService, mockAccessEventService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("PUT", "/tokens/tok-1/validity", `{"valid_until": "tomorrow"}`)
	c.Params = gin.Params{{Key: "value", Value: "tok-1"}}

	handler.UpdateValidity(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid datetime")
}

func TestTokenHandler_CheckValidity_Success(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockAccessEventService := new(MockAccessEventService)

	handler := NewTokenHandler(mockTokenService, mockAccessEventService)

	mockTokenService.On("CheckValidity", mock.Anything, []string{"a", "b"}).
		Return(map[string]bool{"a": true, "b": false}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/tokens/validity", `{"token_list": ["a", "b"]}`)

	handler.CheckValidity(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token_validity_dict")
	mockTokenService.AssertExpectations(t)
}

func TestTokenHandler_ListEvents_Success(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockAccessEventService := new(MockAccessEventService)

	handler := NewTokenHandler(mockTokenService, mockAccessEventService)

	events := []*tokens.AccessEvent{
		{ID: 1, TokenID: 7, OccurredAt: time.Now()},
	}
	mockAccessEventService.On("ListEvents", mock.Anything).Return(events, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/events", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tid":7`)
	mockAccessEventService.AssertExpectations(t)
}

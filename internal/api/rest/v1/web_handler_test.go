//go:build unit
// +build unit

package v1

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const statusPageTestTemplate = `{{if .DocumentFound}}found valid={{.IsValid}} count={{.Count}} avg={{.AverageTime}}{{else}}not found{{end}}`

func newWebTestEngine(t *testing.T, handler WebHandler) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("index.html").Parse(statusPageTestTemplate)))
	r.GET("/document/:token", handler.Fetch)
	r.GET("/:token", handler.StatusPage)
	r.GET("/", handler.Home)
	return r
}

func TestWebHandler_Fetch_Success(t *testing.T) {
	mockRetrievalService := new(MockDocumentRetrievalService)
	mockTokenInfoService := new(MockTokenInfoService)

	handler := NewWebHandler(mockRetrievalService, mockTokenInfoService, &config.PageSettings{})
	r := newWebTestEngine(t, handler)

	document := &documents.Document{ID: "doc-1", Filename: "report.pdf"}
	mockRetrievalService.On("Fetch", mock.Anything, "tok-1").Return(document, []byte("%PDF-1.4 data"), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/document/tok-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report.pdf")
	assert.Equal(t, "%PDF-1.4 data", w.Body.String())
	mockRetrievalService.AssertExpectations(t)
}

func TestWebHandler_Fetch_UnknownToken_NotFound(t *testing.T) {
	mockRetrievalService := new(MockDocumentRetrievalService)
	mockTokenInfoService := new(MockTokenInfoService)

	handler := NewWebHandler(mockRetrievalService, mockTokenInfoService, &config.PageSettings{})
	r := newWebTestEngine(t, handler)

	mockRetrievalService.On("Fetch", mock.Anything, "missing").Return(nil, nil, tokens.ErrTokenNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/document/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebHandler_Fetch_ExpiredToken_Gone(t *testing.T) {
	mockRetrievalService := new(MockDocumentRetrievalService)
	mockTokenInfoService := new(MockTokenInfoService)

	handler := NewWebHandler(mockRetrievalService, mockTokenInfoService, &config.PageSettings{})
	r := newWebTestEngine(t, handler)

	mockRetrievalService.On("Fetch", mock.Anything, "stale").Return(nil, nil, tokens.ErrTokenExpired)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/document/stale", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGone, w.Code)
}

func TestWebHandler_StatusPage_KnownToken(t *testing.T) {
	mockRetrievalService := new(MockDocumentRetrievalService)
	mockTokenInfoService := new(MockTokenInfoService)

	handler := NewWebHandler(mockRetrievalService, mockTokenInfoService, &config.PageSettings{ShowInfo: true})
	r := newWebTestEngine(t, handler)

	document := &documents.Document{ID: "doc-1", Title: "report", Filename: "report.pdf"}
	token := &tokens.Token{ID: 1, DocumentID: "doc-1", Value: "tok-1", ValidUntil: time.Now().Add(time.Hour)}
	mockRetrievalService.On("Resolve", mock.Anything, "tok-1").Return(document, token, nil)

	firstAccess := time.Now().Add(-time.Hour)
	averageTime := 2 * time.Hour
	mockTokenInfoService.On("InfoByValue", mock.Anything, "tok-1").Return(&tokens.TokenInfo{
		AccessCount: 3,
		FirstAccess: &firstAccess,
		AverageTime: &averageTime,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/tok-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "found valid=true")
	assert.Contains(t, w.Body.String(), "count=3")
	assert.Contains(t, w.Body.String(), "avg=2 hours")
}

func TestWebHandler_StatusPage_UnknownToken(t *testing.T) {
	mockRetrievalService := new(MockDocumentRetrievalService)
	mockTokenInfoService := new(MockTokenInfoService)

	handler := NewWebHandler(mockRetrievalService, mockTokenInfoService, &config.PageSettings{})
	r := newWebTestEngine(t, handler)

	mockRetrievalService.On("Resolve", mock.Anything, "missing").Return(nil, nil, tokens.ErrTokenNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestWebHandler_Home_Empty(t *testing.T) {
	mockRetrievalService := new(MockDocumentRetrievalService)
	mockTokenInfoService := new(MockTokenInfoService)

	handler := NewWebHandler(mockRetrievalService, mockTokenInfoService, &config.PageSettings{})
	r := newWebTestEngine(t, handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestWebHandler_Home_Redirect(t *testing.T) {
	mockRetrievalService := new(MockDocumentRetrievalService)
	mockTokenInfoService := new(MockTokenInfoService)

	handler := NewWebHandler(mockRetrievalService, mockTokenInfoService, &config.PageSettings{
		DefaultRedirect: "https://example.org",
	})
	r := newWebTestEngine(t, handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.org", w.Header().Get("Location"))
}

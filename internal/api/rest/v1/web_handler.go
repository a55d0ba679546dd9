package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tna76874/docdepot/internal/app"
	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// firstViewedLayout is the timestamp format shown on the status page.
const firstViewedLayout = "02.01.2006 15:04:05"

// WebHandler defines the interface for the public, unauthenticated routes
type WebHandler interface {
	Fetch(ctx *gin.Context)
	StatusPage(ctx *gin.Context)
	Home(ctx *gin.Context)
}

// webHandler struct holds the services and page settings
type webHandler struct {
	retrievalService documents.DocumentRetrievalService
	tokenInfoService tokens.TokenInfoService
	pageSettings     *config.PageSettings
}

// NewWebHandler creates a new WebHandler
func NewWebHandler(retrievalService documents.DocumentRetrievalService, tokenInfoService tokens.TokenInfoService, pageSettings *config.PageSettings) WebHandler {
	return &webHandler{
		retrievalService: retrievalService,
		tokenInfoService: tokenInfoService,
		pageSettings:     pageSettings,
	}
}

// Fetch serves the document behind a token and records the access.
// Unknown tokens yield 404, expired ones 410.
func (handler *webHandler) Fetch(ctx *gin.Context) {
	tokenValue := ctx.Param("token")

	document, data, err := handler.retrievalService.Fetch(ctx, tokenValue)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrTokenNotFound), errors.Is(err, documents.ErrDocumentNotFound):
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "document not found"})
		case errors.Is(err, tokens.ErrTokenExpired):
			ctx.JSON(http.StatusGone, ErrorResponse{Error: "token expired"})
		default:
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", document.Filename))
	ctx.Data(http.StatusOK, http.DetectContentType(data), data)
}

// StatusPage renders the HTML status page of a token: validity, access
// count, first-viewed timestamp and the clustered average time.
func (handler *webHandler) StatusPage(ctx *gin.Context) {
	tokenValue := ctx.Param("token")

	document, token, err := handler.retrievalService.Resolve(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenNotFound) || errors.Is(err, documents.ErrDocumentNotFound) {
			ctx.HTML(http.StatusOK, "index.html", gin.H{
				"DocumentFound": false,
				"Settings":      handler.pageSettings,
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	info, err := handler.tokenInfoService.InfoByValue(ctx, tokenValue)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	firstViewed := ""
	if info.FirstAccess != nil {
		firstViewed = info.FirstAccess.Format(firstViewedLayout)
	}

	averageTime := ""
	if info.AverageTime != nil {
		averageTime = app.ClusterTimeSpan(*info.AverageTime)
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"DocumentFound": true,
		"IsValid":       token.IsValidAt(time.Now()),
		"Token":         tokenValue,
		"Title":         document.Title,
		"Filename":      document.Filename,
		"Count":         info.AccessCount,
		"FirstViewed":   firstViewed,
		"AverageTime":   averageTime,
		"Settings":      handler.pageSettings,
	})
}

// Home returns an empty page, or redirects when one is configured.
func (handler *webHandler) Home(ctx *gin.Context) {
	if handler.pageSettings.DefaultRedirect != "" {
		ctx.Redirect(http.StatusFound, handler.pageSettings.DefaultRedirect)
		return
	}
	ctx.String(http.StatusOK, "")
}

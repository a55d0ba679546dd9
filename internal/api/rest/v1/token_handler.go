package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"

	"github.com/gin-gonic/gin"
)

// TokenHandler defines the interface for handling token-related operations
type TokenHandler interface {
	Issue(ctx *gin.Context)
	DeleteByValue(ctx *gin.Context)
	UpdateValidity(ctx *gin.Context)
	CheckValidity(ctx *gin.Context)
	ListEvents(ctx *gin.Context)
}

// tokenHandler struct holds the services
type tokenHandler struct {
	tokenService       tokens.TokenService
	accessEventService tokens.AccessEventService
}

// NewTokenHandler creates a new TokenHandler
func NewTokenHandler(tokenService tokens.TokenService, accessEventService tokens.AccessEventService) TokenHandler {
	return &tokenHandler{
		tokenService:       tokenService,
		accessEventService: accessEventService,
	}
}

// Issue creates a new access token for an existing document
func (handler *tokenHandler) Issue(ctx *gin.Context) {
	var req IssueTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	value, err := handler.tokenService.Issue(ctx, req.DID)
	if err != nil {
		if errors.Is(err, documents.ErrDocumentNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "document not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, TokenResponse{Token: value})
}

// DeleteByValue removes a token and its access events
func (handler *tokenHandler) DeleteByValue(ctx *gin.Context) {
	value := ctx.Param("value")

	if err := handler.tokenService.DeleteByValue(ctx, value); err != nil {
		if errors.Is(err, tokens.ErrTokenNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "token not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("token %s deleted", value)})
}

// UpdateValidity moves the expiry date of a token
func (handler *tokenHandler) UpdateValidity(ctx *gin.Context) {
	value := ctx.Param("value")

	var req UpdateValidityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	validUntil, err := parseDatetime(req.ValidUntil)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := handler.tokenService.UpdateValidUntil(ctx, value, validUntil); err != nil {
		if errors.Is(err, tokens.ErrTokenNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "token not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("validity of token %s updated", value)})
}

// CheckValidity reports the validity of a batch of tokens
func (handler *tokenHandler) CheckValidity(ctx *gin.Context) {
	var req CheckValidityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	validity, err := handler.tokenService.CheckValidity(ctx, req.TokenList)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, CheckValidityResponse{TokenValidity: validity})
}

// ListEvents dumps every access event
func (handler *tokenHandler) ListEvents(ctx *gin.Context) {
	events, err := handler.accessEventService.ListEvents(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	listResponse := []EventResponse{}
	for _, event := range events {
		listResponse = append(listResponse, NewEventResponse(event))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

package v1

import (
	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"
	"github.com/tna76874/docdepot/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1 plus the public
// retrieval routes.
func SetupRoutes(r *gin.Engine,
	documentUploadService documents.DocumentUploadService,
	documentRetrievalService documents.DocumentRetrievalService,
	documentMetadataService documents.DocumentMetadataService,
	tokenService tokens.TokenService,
	tokenInfoService tokens.TokenInfoService,
	accessEventService tokens.AccessEventService,
	userService users.UserService,
	apiKey string,
	pageSettings *config.PageSettings) {

	v1 := r.Group(BasePath) // lookup in version file

	// The CLI handshakes the version before sending credentials.
	v1.GET("/version", VersionHandler)

	authed := v1.Group("", NewAPIKeyMiddleware(apiKey))

	// Document Routes
	documentHandler := NewDocumentHandler(documentUploadService, documentMetadataService)
	authed.POST("/documents", documentHandler.Upload)
	authed.GET("/documents", documentHandler.List)
	authed.GET("/documents/:id", documentHandler.GetByID)
	authed.DELETE("/documents/:id", documentHandler.DeleteByID)

	// Token Routes
	tokenHandler := NewTokenHandler(tokenService, accessEventService)
	authed.POST("/tokens", tokenHandler.Issue)
	authed.DELETE("/tokens/:value", tokenHandler.DeleteByValue)
	authed.PUT("/tokens/:value/validity", tokenHandler.UpdateValidity)
	authed.POST("/tokens/validity", tokenHandler.CheckValidity)
	authed.GET("/events", tokenHandler.ListEvents)

	// User Routes
	userHandler := NewUserHandler(userService)
	authed.DELETE("/users/:uid", userHandler.DeleteByUID)
	authed.PUT("/users/:uid/validity", userHandler.UpdateValidity)
	authed.PUT("/users/validity", userHandler.UpdateAllValidity)
	authed.POST("/users/rename", userHandler.Rename)
	authed.GET("/users", userHandler.List)
	authed.GET("/stats/average-times", userHandler.AverageTimes)

	// Public Routes
	webHandler := NewWebHandler(documentRetrievalService, tokenInfoService, pageSettings)
	r.GET("/document/:token", webHandler.Fetch)
	r.GET("/:token", webHandler.StatusPage)
	r.GET("/", webHandler.Home)
}

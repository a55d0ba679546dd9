package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// DocumentHandler defines the interface for handling document-related operations
type DocumentHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// documentHandler struct holds the services
type documentHandler struct {
	documentUploadService   documents.DocumentUploadService
	documentMetadataService documents.DocumentMetadataService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentUploadService documents.DocumentUploadService, documentMetadataService documents.DocumentMetadataService) DocumentHandler {
	return &documentHandler{
		documentUploadService:   documentUploadService,
		documentMetadataService: documentMetadataService,
	}
}

// Upload deposits a document. The multipart form carries title,
// filename, user_uid, the client's sha256 checksum and the file
// itself.
func (handler *documentHandler) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form data"})
		return
	}

	req := &documents.UploadRequest{}
	if titles := form.Value["title"]; len(titles) > 0 {
		req.Title = titles[0]
	}
	if filenames := form.Value["filename"]; len(filenames) > 0 {
		req.Filename = filenames[0]
	}
	if userUIDs := form.Value["user_uid"]; len(userUIDs) > 0 {
		req.UserUID = userUIDs[0]
	}
	if checksums := form.Value["checksum"]; len(checksums) > 0 {
		req.Checksum = checksums[0]
	}

	files := form.File["file"]
	if len(files) == 0 {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file provided"})
		return
	}

	file, err := files[0].Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	req.Data, err = io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
		return
	}

	// The filename form field defaults to the upload's own name.
	if req.Filename == "" {
		req.Filename = files[0].Filename
	}

	receipt, err := handler.documentUploadService.Upload(ctx, req)
	if err != nil {
		if errors.Is(err, documents.ErrChecksumMismatch) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "checksum verification failed"})
			return
		}
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("error depositing document: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, UploadDocumentResponse{
		DID:    receipt.Document.ID,
		Token:  receipt.TokenValue,
		Checks: receipt.Checks,
	})
}

// List dumps document metadata optionally filtered by query parameters
func (handler *documentHandler) List(ctx *gin.Context) {
	query := documents.NewDocumentQuery()

	if userUID := ctx.Query("user_uid"); len(userUID) > 0 {
		query.UserUID = userUID
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}
	if sortBy := ctx.Query("sort_by"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sort_order"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	documentList, err := handler.documentMetadataService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	listResponse := []DocumentResponse{}
	for _, document := range documentList {
		listResponse = append(listResponse, NewDocumentResponse(document))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID fetches the metadata of one document
func (handler *documentHandler) GetByID(ctx *gin.Context) {
	documentID := ctx.Param("id")

	document, err := handler.documentMetadataService.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrDocumentNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "document not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, NewDocumentResponse(document))
}

// DeleteByID removes a document with its tokens, events and file
func (handler *documentHandler) DeleteByID(ctx *gin.Context) {
	documentID := ctx.Param("id")

	if err := handler.documentMetadataService.DeleteByID(ctx, documentID); err != nil {
		if errors.Is(err, documents.ErrDocumentNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "document not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("document %s deleted", documentID)})
}

package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tna76874/docdepot/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UserHandler defines the interface for handling user-related operations
type UserHandler interface {
	DeleteByUID(ctx *gin.Context)
	UpdateValidity(ctx *gin.Context)
	UpdateAllValidity(ctx *gin.Context)
	Rename(ctx *gin.Context)
	List(ctx *gin.Context)
	AverageTimes(ctx *gin.Context)
}

// userHandler struct holds the services
type userHandler struct {
	userService users.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService users.UserService) UserHandler {
	return &userHandler{
		userService: userService,
	}
}

// DeleteByUID removes a user with all their documents, tokens, events
// and stored files
func (handler *userHandler) DeleteByUID(ctx *gin.Context) {
	uid := ctx.Param("uid")

	if err := handler.userService.DeleteByUID(ctx, uid); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("user %s deleted", uid)})
}

// UpdateValidity moves the expiry date of one user
func (handler *userHandler) UpdateValidity(ctx *gin.Context) {
	uid := ctx.Param("uid")

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

	if err := handler.userService.UpdateValidUntil(ctx, uid, validUntil); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("validity of user %s updated", uid)})
}

// UpdateAllValidity moves the expiry date of every user
func (handler *userHandler) UpdateAllValidity(ctx *gin.Context) {
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

	if err := handler.userService.UpdateAllValidUntil(ctx, validUntil); err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: "validity of all users updated"})
}

// Rename applies a mapping of old UID to new UID
func (handler *userHandler) Rename(ctx *gin.Context) {
	var req RenameUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := handler.userService.Rename(ctx, req.UserDict); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("renamed %d users", len(req.UserDict))})
}

// List dumps every user
func (handler *userHandler) List(ctx *gin.Context) {
	userList, err := handler.userService.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	listResponse := []UserResponse{}
	for _, user := range userList {
		listResponse = append(listResponse, NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// AverageTimes reports per user the mean span in seconds between
// upload and first access; users without events map to null
func (handler *userHandler) AverageTimes(ctx *gin.Context) {
	averages, err := handler.userService.AverageTimeForAllUsers(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make(map[string]*float64, len(averages))
	for uid, average := range averages {
		if average == nil {
			response[uid] = nil
			continue
		}
		seconds := average.Seconds()
		response[uid] = &seconds
	}

	ctx.JSON(http.StatusOK, response)
}

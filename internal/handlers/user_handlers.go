package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// UserHandler handles the admin user management routes
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetStats returns user counts by role
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.userService.Stats(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, stats)
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, users)
}

// GetUser returns a single user
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, user)
}

// UpdateUser handles an admin's update of any user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Decode and validate the request body
	var update models.UserAdminUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), principal, id, &update)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, user)
}

// DeleteUser handles an admin's deletion of another user
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.userService.DeleteUser(r.Context(), principal, id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgUserDeleted)
}

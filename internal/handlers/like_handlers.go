package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// LikeHandler handles post like routes
type LikeHandler struct {
	likeService LikeServiceInterface
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService LikeServiceInterface) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
	}
}

// Check reports whether the caller has liked the post
func (h *LikeHandler) Check(w http.ResponseWriter, r *http.Request) {
	principal, postID, ok := h.target(w, r)
	if !ok {
		return
	}

	status, err := h.likeService.Check(r.Context(), postID, principal.ID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, status)
}

// Count returns the number of likes on the post
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	postID, err := utils.ParseID(chi.URLParam(r, constants.ParamPostID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	count, err := h.likeService.Count(r.Context(), postID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, count)
}

// Like records the caller's like
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	principal, postID, ok := h.target(w, r)
	if !ok {
		return
	}

	result, err := h.likeService.Like(r.Context(), postID, principal.ID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, result)
}

// Unlike removes the caller's like
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	principal, postID, ok := h.target(w, r)
	if !ok {
		return
	}

	result, err := h.likeService.Unlike(r.Context(), postID, principal.ID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, result)
}

// target resolves the caller and the post id, writing the error response
// itself when either is missing.
func (h *LikeHandler) target(w http.ResponseWriter, r *http.Request) (models.Principal, int64, bool) {
	principal, ok := auth.GetPrincipal(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return models.Principal{}, 0, false
	}

	postID, err := utils.ParseID(chi.URLParam(r, constants.ParamPostID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return models.Principal{}, 0, false
	}

	return principal, postID, true
}

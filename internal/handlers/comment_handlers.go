package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// CommentHandler handles post comment routes
type CommentHandler struct {
	commentService CommentServiceInterface
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListByPost returns the comments on a post
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := utils.ParseID(chi.URLParam(r, constants.ParamPostID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	comments, err := h.commentService.ListByPost(r.Context(), postID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, comments)
}

// Create adds a comment by the caller
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	postID, err := utils.ParseID(chi.URLParam(r, constants.ParamPostID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var req models.CommentCreate
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	comment, err := h.commentService.Create(r.Context(), principal, postID, req.Comment)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, comment)
}

// Delete removes a comment. The ownership gate runs before this handler.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.commentService.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgCommentDeleted)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// multipartOverhead leaves room for the form boundaries and headers around
// the image part.
const multipartOverhead = 1 << 20

// PostHandler handles blog post routes
type PostHandler struct {
	postService PostServiceInterface
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService PostServiceInterface) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// ListPublished returns all published posts
func (h *PostHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListPublished(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, posts)
}

// GetBySlug returns a published post with its like count
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetPublishedBySlug(r.Context(), chi.URLParam(r, constants.ParamSlug))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, post)
}

// ListMine returns the caller's own posts, drafts included
func (h *PostHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	posts, err := h.postService.ListByAuthor(r.Context(), principal.ID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, posts)
}

// GetForEdit returns any post, published or not, to its author or an admin
func (h *PostHandler) GetForEdit(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.postService.GetForEdit(r.Context(), principal, id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, post)
}

// ListAll returns every post for the admin dashboard
func (h *PostHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListAll(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, posts)
}

// GetByID returns any post for the admin dashboard
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, post)
}

// Create stores a new draft post authored by the caller
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	var req models.PostCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	post, err := h.postService.Create(r.Context(), principal, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, post)
}

// Update edits a post. The ownership gate runs before this handler.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var req models.PostUpdate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	post, err := h.postService.Update(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, post)
}

// Delete removes a post. The ownership gate runs before this handler.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgPostDeleted)
}

// UploadImage accepts a multipart "image" field and returns its public URL
func (h *PostHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxImageUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(constants.MaxImageUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.BadRequest(w, constants.MsgImageTooLarge, nil)
			return
		}
		utils.BadRequest(w, constants.MsgNoFileUploaded, nil)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn().Err(err).Msg("Failed to remove multipart temp files")
		}
	}()

	file, header, err := r.FormFile(constants.FormFieldImage)
	if err != nil {
		utils.BadRequest(w, constants.MsgNoFileUploaded, nil)
		return
	}
	defer file.Close()

	resp, err := h.postService.UploadImage(r.Context(), file, header.Size, header.Header.Get(constants.HeaderContentType))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, resp)
}

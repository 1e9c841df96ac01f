package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// NewsletterHandler handles newsletter subscription routes
type NewsletterHandler struct {
	newsletterService NewsletterServiceInterface
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletterService NewsletterServiceInterface) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletterService,
	}
}

// Subscribe adds an email to the newsletter. A new subscription answers 201;
// resubscribing or an existing subscription answers 200.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	result, created, err := h.newsletterService.Subscribe(r.Context(), req.Email)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	status := constants.StatusOK
	if created {
		status = constants.StatusCreated
	}
	utils.JSON(w, status, result)
}

// Unsubscribe removes an email from the newsletter
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.newsletterService.Unsubscribe(r.Context(), req.Email); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgUnsubscribed)
}

// Verify confirms a subscription from the emailed link
func (h *NewsletterHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := h.newsletterService.Verify(r.Context(), chi.URLParam(r, constants.ParamToken)); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgSubscriptionVerified)
}

package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService  AuthServiceInterface
	resetService PasswordResetServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface, resetService PasswordResetServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	if resetService == nil {
		panic("resetService cannot be nil")
	}
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	resp, err := h.authService.Register(r.Context(), &reg)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, resp)
}

// Login handles user authentication. Every failure, including a body that
// cannot be decoded, answers 401 with the same message. Extra fields are
// ignored.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.UserCredentials
	if err := utils.DecodeJSONLenient(r, &creds); err != nil {
		log.Debug().Err(err).Msg("Unreadable login body")
		utils.ErrorFromAppError(w, utils.NewInvalidCredentialsError())
		return
	}
	if creds.Email == "" || creds.Password == "" {
		utils.ErrorFromAppError(w, utils.NewInvalidCredentialsError())
		return
	}

	resp, err := h.authService.Login(r.Context(), &creds)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// ForgotPassword issues a reset code. The response is the same whether or
// not the email belongs to an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.resetService.RequestReset(r.Context(), req.Email); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgResetRequested)
}

// ResetPassword consumes a reset code and sets the new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.resetService.ResetPassword(r.Context(), &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgPasswordReset)
}

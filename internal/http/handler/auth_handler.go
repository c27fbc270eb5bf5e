package handler

import (
	"encoding/json"
	"net/http"

	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/service"
	"go.uber.org/zap"
)

// AuthHandler handles signup and identity endpoints
type AuthHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(userService *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// SignupResponse is returned after a successful tenant signup
type SignupResponse struct {
	Company *domain.CompanyDTO `json:"company"`
	Admin   *domain.UserDTO    `json:"admin"`
}

// Signup godoc
// @Summary Create a company and its first admin
// @Description Registers a new company (tenant) with an initial admin user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.SignupRequest true "Signup request"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, admin, err := h.userService.Signup(r.Context(), &req)
	if err != nil {
		h.logger.Error("signup failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, SignupResponse{Company: company, Admin: admin})
}

// Me godoc
// @Summary Get the current user
// @Description Returns the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userCtx.UserID)
	if err != nil {
		h.logger.Error("failed to load current user", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

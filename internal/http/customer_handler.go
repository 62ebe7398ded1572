package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/musfiqshanta/launchmybiz-backend/internal/auth"
	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

type CustomerHandler struct {
	users   repository.UserRepository
	tokens  *auth.TokenManager
	logger  *slog.Logger
	timeout time.Duration
}

func NewCustomerHandler(users repository.UserRepository, tokens *auth.TokenManager, logger *slog.Logger, timeout time.Duration) *CustomerHandler {
	return &CustomerHandler{
		users:   users,
		tokens:  tokens,
		logger:  logger,
		timeout: timeout,
	}
}

type signupRequestDTO struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Remember     bool   `json:"remember"`
	ProfileImage string `json:"profileImage"`
}

type userDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Remember     bool   `json:"remember"`
	ProfileImage string `json:"profileImage"`
}

// POST /api/customers/signup
func (h *CustomerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req signupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, email and password are required")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}

	user := &domain.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		HashedPassword: hashed,
		Remember:       req.Remember,
		ProfileImage:   req.ProfileImage,
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "email_taken", "Email already registered")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Signup successful",
		"user": userDTO{
			ID:           user.ID.Hex(),
			Name:         user.Name,
			Email:        user.Email,
			Remember:     user.Remember,
			ProfileImage: user.ProfileImage,
		},
	})
}

// POST /api/customers/signin
func (h *CustomerHandler) Signin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req signinRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}
		h.logger.Error("user lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}

	if !auth.CheckPassword(user.HashedPassword, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := h.tokens.Sign(auth.Claims{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  "customer",
	})
	if err != nil {
		h.logger.Error("failed to sign user token", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user": userDTO{
			ID:           user.ID.Hex(),
			Name:         user.Name,
			Email:        user.Email,
			Remember:     user.Remember,
			ProfileImage: user.ProfileImage,
		},
	})
}

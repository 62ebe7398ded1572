package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/musfiqshanta/launchmybiz-backend/internal/auth"
	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/export"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

// StatusUpdater changes an order's payment status and notifies the customer.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
}

type AdminHandler struct {
	admins        repository.AdminRepository
	orders        repository.OrderRepository
	statusUpdater StatusUpdater
	tokens        *auth.TokenManager
	logger        *slog.Logger
	timeout       time.Duration
	secureCookies bool
}

func NewAdminHandler(
	admins repository.AdminRepository,
	orders repository.OrderRepository,
	statusUpdater StatusUpdater,
	tokens *auth.TokenManager,
	logger *slog.Logger,
	timeout time.Duration,
	secureCookies bool,
) *AdminHandler {
	return &AdminHandler{
		admins:        admins,
		orders:        orders,
		statusUpdater: statusUpdater,
		tokens:        tokens,
		logger:        logger,
		timeout:       timeout,
		secureCookies: secureCookies,
	}
}

type signinRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// POST /api/admin/signin
func (h *AdminHandler) Signin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req signinRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	admin, err := h.admins.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}
		h.logger.Error("admin lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}

	if !auth.CheckPassword(admin.HashedPassword, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := h.tokens.Sign(auth.Claims{
		ID:    admin.ID.Hex(),
		Email: admin.Email,
		Role:  admin.Role,
	})
	if err != nil {
		h.logger.Error("failed to sign admin token", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}

	h.setAuthCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"admin": adminDTO{
			ID:       admin.ID.Hex(),
			Username: admin.Username,
			Email:    admin.Email,
			Role:     admin.Role,
		},
	})
}

// GET /api/admin/me
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin := adminFromContext(r.Context())
	if admin == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing admin authentication")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"admin": adminDTO{
			ID:       admin.ID.Hex(),
			Username: admin.Username,
			Email:    admin.Email,
			Role:     admin.Role,
		},
	})
}

type changePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// POST /api/admin/change-password
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	admin := adminFromContext(r.Context())
	if admin == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing admin authentication")
		return
	}

	var req changePasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "Current and new password are required.")
		return
	}

	if !auth.CheckPassword(admin.HashedPassword, req.CurrentPassword) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Current password is incorrect.")
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to change password.")
		return
	}

	if err := h.admins.UpdateAdminPassword(ctx, admin.ID.Hex(), hashed); err != nil {
		h.logger.Error("failed to update admin password", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to change password.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully."})
}

// GET /api/admin/business-orders?page=1&limit=10
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	orders, total, err := h.orders.ListOrders(ctx, page, limit)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		"orders":     orders,
	})
}

// GET /api/admin/business-orders/export
func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListAllOrders(ctx)
	if err != nil {
		h.logger.Error("failed to load orders for export", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to export orders")
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="business-orders.xlsx"`)

	if err := export.WriteOrdersWorkbook(w, orders); err != nil {
		// Headers are already written; all we can do is log.
		h.logger.Error("failed to write orders workbook", "error", err)
	}
}

// GET /api/admin/business-orders/{id}/export
func (h *AdminHandler) ExportOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	order, err := h.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Order not found")
			return
		}
		h.logger.Error("failed to load order for export", "order_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to export order")
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="business-order-%s.xlsx"`, id))

	if err := export.WriteOrdersWorkbook(w, []domain.Order{*order}); err != nil {
		h.logger.Error("failed to write order workbook", "order_id", id, "error", err)
	}
}

type updateStatusRequestDTO struct {
	Status string `json:"status"`
}

// PUT /api/admin/business-orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	var req updateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "status is required")
		return
	}

	order, err := h.statusUpdater.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Order not found")
			return
		}
		h.logger.Error("failed to update order status", "order_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update order status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated",
		"order":   order,
	})
}

func (h *AdminHandler) setAuthCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if h.secureCookies {
		// Cross-domain dashboard needs SameSite=None with Secure.
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
		MaxAge:   int(h.tokens.TTL().Seconds()),
	})
}

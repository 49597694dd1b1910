package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/pkg/utils"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    map[string]any `json:"user"`
}

// Register creates an account and issues a token for it.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, httpx.Validation("No data provided"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if email == "" || req.Password == "" {
		httpx.WriteError(w, httpx.Validation("Email and password required"))
		return
	}
	if len(req.Password) < 6 {
		httpx.WriteError(w, httpx.Validation("Password must be at least 6 characters"))
		return
	}

	existing, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.log.Error("registration lookup failed", zap.Error(err))
		httpx.WriteError(w, httpx.Upstream("Registration failed"))
		return
	}
	if existing != nil {
		httpx.WriteError(w, httpx.Validation("Email already registered"))
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		httpx.WriteError(w, httpx.Upstream("Registration failed"))
		return
	}

	user, err := h.users.Create(r.Context(), email, passwordHash, fullName)
	if err != nil {
		h.log.Error("user creation failed", zap.Error(err))
		httpx.WriteError(w, httpx.Upstream("Failed to create user"))
		return
	}

	tk, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		httpx.WriteError(w, httpx.Upstream("Registration failed"))
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		Success: true,
		Token:   tk,
		User:    user.Public(),
	})
}

// Login verifies credentials and issues a fresh token. An unknown email and
// a wrong password produce identical error responses, so the endpoint leaks
// no account existence.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, httpx.Validation("No data provided"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		httpx.WriteError(w, httpx.Validation("Email and password required"))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.log.Error("login lookup failed", zap.Error(err))
		httpx.WriteError(w, httpx.Upstream("Login failed"))
		return
	}
	if user == nil || !utils.VerifyPassword(req.Password, user.PasswordHash) {
		httpx.WriteError(w, httpx.Auth("Invalid email or password"))
		return
	}

	// Best-effort: a failed last-login write must not fail the login.
	if err := h.users.TouchLastLogin(r.Context(), user.ID); err != nil {
		h.log.Warn("last_login update failed", zap.String("user_id", user.ID), zap.Error(err))
	}

	tk, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		httpx.WriteError(w, httpx.Upstream("Login failed"))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Success: true,
		Token:   tk,
		User:    user.Public(),
	})
}

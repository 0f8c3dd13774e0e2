package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/joeldanieldsouza8/bankist/internal/auth"
	"github.com/joeldanieldsouza8/bankist/internal/middleware"
	"github.com/joeldanieldsouza8/bankist/internal/model"
	"github.com/joeldanieldsouza8/bankist/internal/session"
)

// SessionHandler handles login and logout
type SessionHandler struct {
	processor   *session.Processor
	authService *auth.Service
	log         *logrus.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(processor *session.Processor, authService *auth.Service, log *logrus.Logger) *SessionHandler {
	return &SessionHandler{processor: processor, authService: authService, log: log}
}

// RegisterRoutes sets up the public session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

// RegisterProtectedRoutes sets up the session routes that need a token
func (h *SessionHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/logout", h.Logout)
}

// loginResponse pairs the session token with the post-login view
type loginResponse struct {
	Greeting  string            `json:"greeting"`
	At        time.Time         `json:"at"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	Account   model.AccountView `json:"account"`
}

// Login handles POST /login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.processor.Login(req)
	if err != nil {
		// A failed login never reveals whether the username exists
		writeError(w, http.StatusUnauthorized, model.ErrAuthenticationFailed.Error())
		return
	}

	token, err := h.authService.IssueToken(req.Username)
	if err != nil {
		h.log.WithError(err).Error("failed to issue session token")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.log.WithField("username", req.Username).Info("session opened")

	account := result.Account
	decorateView(&account)

	writeJSON(w, http.StatusOK, loginResponse{
		Greeting:  result.Greeting,
		At:        result.At,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Account:   account,
	})
}

// Logout handles POST /logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	h.processor.Logout(username)

	h.log.WithField("username", username).Info("session closed")

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

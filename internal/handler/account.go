package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/joeldanieldsouza8/bankist/internal/middleware"
	"github.com/joeldanieldsouza8/bankist/internal/model"
	"github.com/joeldanieldsouza8/bankist/internal/session"
)

// AccountHandler handles the account actions of an authenticated session
type AccountHandler struct {
	processor *session.Processor
	log       *logrus.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(processor *session.Processor, log *logrus.Logger) *AccountHandler {
	return &AccountHandler{processor: processor, log: log}
}

// RegisterRoutes sets up the account routes on the given router.
// All of them require an authenticated session.
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Route("/account", func(r chi.Router) {
		r.Get("/", h.View)
		r.Post("/transfers", h.Transfer)
		r.Post("/loans", h.RequestLoan)
		r.Post("/sort", h.ToggleSort)
		r.Delete("/", h.Close)
	})
}

// View handles GET /account
func (h *AccountHandler) View(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	view, err := h.processor.View(username)
	if err != nil {
		writeActionError(w, err)
		return
	}

	decorateView(view)
	writeJSON(w, http.StatusOK, view)
}

// Transfer handles POST /account/transfers
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.processor.Transfer(username, req)
	if err != nil {
		writeActionError(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"username":       username,
		"to":             req.To,
		"transaction_id": resp.TransactionID,
	}).Info("transfer completed")

	decorateView(&resp.Account)
	writeJSON(w, http.StatusCreated, resp)
}

// RequestLoan handles POST /account/loans
func (h *AccountHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req model.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.processor.RequestLoan(username, req)
	if err != nil {
		writeActionError(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"username":       username,
		"transaction_id": resp.TransactionID,
	}).Info("loan granted")

	decorateView(&resp.Account)
	writeJSON(w, http.StatusCreated, resp)
}

// ToggleSort handles POST /account/sort
func (h *AccountHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	view, err := h.processor.ToggleSort(username)
	if err != nil {
		writeActionError(w, err)
		return
	}

	decorateView(view)
	writeJSON(w, http.StatusOK, view)
}

// Close handles DELETE /account
// The username and PIN must be re-entered in the request body.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req model.CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.processor.CloseAccount(username, req); err != nil {
		writeActionError(w, err)
		return
	}

	h.log.WithField("username", username).Info("account closed")

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Account closed",
		"session_ended": true,
	})
}

// decorateView fills in the rendered labels the browser shows for each
// movement row and leaves the raw values untouched
func decorateView(view *model.AccountView) {
	now := time.Now()
	for i := range view.Movements {
		row := &view.Movements[i]
		row.Formatted = FormatAmount(row.Amount, view.Locale, view.Currency)
		row.DateLabel = FormatMovementDate(row.Date, now, view.Locale)
	}
}

// writeActionError maps session action errors to HTTP statuses
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, model.ErrNotAuthenticated.Error())
	case errors.Is(err, model.ErrAuthenticationFailed):
		writeError(w, http.StatusUnauthorized, model.ErrAuthenticationFailed.Error())
	case errors.Is(err, model.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, model.ErrAccountNotFound.Error())
	case errors.Is(err, model.ErrInvalidTransfer), errors.Is(err, model.ErrLoanRejected):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Action failed")
	}
}

// Helper functions for HTTP responses

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Package casesapi serves a read-only view of fraud cases and of the call
// in progress.
package casesapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/superfeelapi/goEagiFraud/business/casestore"
	"github.com/superfeelapi/goEagiFraud/business/dialogue"
	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
	"go.uber.org/zap"
)

// CallSnapshotter reports the state of the current call.
type CallSnapshotter interface {
	Snapshot() dialogue.Snapshot
}

type Handler struct {
	store  casestore.Storer
	call   CallSnapshotter
	logger *zap.SugaredLogger
}

func NewHandler(store casestore.Storer, call CallSnapshotter, logger *zap.SugaredLogger) *Handler {
	return &Handler{store: store, call: call, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/v1/health", h.Health)
	r.Get("/v1/cases/{name}", h.GetCase)
	r.Get("/v1/call", h.GetCall)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// GetCase returns a case without its security answer.
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	c, err := h.store.Find(r.Context(), name)
	switch {
	case errors.Is(err, fraudcase.ErrNotFound):
		writeError(w, http.StatusNotFound, "case not found")
		return

	case err != nil:
		h.logger.Errorw("casesapi: GetCase", "customer", name, "ERROR", err)
		writeError(w, http.StatusServiceUnavailable, "case store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, newCaseView(c))
}

func (h *Handler) GetCall(w http.ResponseWriter, r *http.Request) {
	if h.call == nil {
		writeError(w, http.StatusNotFound, "no call in progress")
		return
	}
	writeJSON(w, http.StatusOK, h.call.Snapshot())
}

// =====================================================================================================================

type caseView struct {
	CustomerName         string     `json:"customerName"`
	CardEnding           string     `json:"cardEnding"`
	TransactionAmount    string     `json:"transactionAmount"`
	TransactionMerchant  string     `json:"transactionMerchant"`
	TransactionLocation  string     `json:"transactionLocation"`
	TransactionTime      string     `json:"transactionTime"`
	Status               string     `json:"status"`
	VerificationAttempts int        `json:"verificationAttempts"`
	ResolvedAt           *time.Time `json:"resolvedAt,omitempty"`
	Outcome              string     `json:"outcome,omitempty"`
}

func newCaseView(c fraudcase.FraudCase) caseView {
	return caseView{
		CustomerName:         c.CustomerName,
		CardEnding:           c.CardEnding,
		TransactionAmount:    c.TransactionAmount,
		TransactionMerchant:  c.TransactionMerchant,
		TransactionLocation:  c.TransactionLocation,
		TransactionTime:      c.TransactionTime,
		Status:               string(c.CurrentStatus()),
		VerificationAttempts: c.VerificationAttempts,
		ResolvedAt:           c.ResolvedAt,
		Outcome:              c.Outcome,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

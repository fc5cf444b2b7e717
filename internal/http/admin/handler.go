package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/audit"
	"github.com/MrJamesThe3rd/intima/internal/http/middleware"
	"github.com/MrJamesThe3rd/intima/internal/http/respond"
	"github.com/MrJamesThe3rd/intima/internal/ledger"
	"github.com/MrJamesThe3rd/intima/internal/session"
)

type Ledger interface {
	ListWithdrawals(ctx context.Context, filter ledger.WithdrawalFilter) ([]*ledger.Withdrawal, error)
	Reconcile(ctx context.Context, accountID uuid.UUID) (*ledger.Reconciliation, error)
}

type Facade interface {
	ResolveWithdrawal(ctx context.Context, adminID, withdrawalID uuid.UUID, decision ledger.Decision) (*ledger.Withdrawal, error)
	Stats(ctx context.Context) (*session.Stats, error)
}

type AuditLog interface {
	List(ctx context.Context, limit int) ([]*audit.Event, error)
}

type Handler struct {
	ledger Ledger
	facade Facade
	audit  AuditLog
}

func NewHandler(l Ledger, f Facade, a AuditLog) *Handler {
	return &Handler{ledger: l, facade: f, audit: a}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.RequireAdmin)

	r.Get("/withdrawals", h.listWithdrawals)
	r.Post("/withdrawals/{id}/resolve", h.resolveWithdrawal)
	r.Get("/accounts/{id}/reconcile", h.reconcile)
	r.Get("/stats", h.stats)
	r.Get("/audits", h.audits)
}

type withdrawalResponse struct {
	ID             uuid.UUID               `json:"id"`
	AccountID      uuid.UUID               `json:"account_id"`
	Amount         int64                   `json:"amount"`
	PaymentMethod  ledger.PaymentMethod    `json:"payment_method"`
	PaymentDetails string                  `json:"payment_details"`
	Status         ledger.WithdrawalStatus `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	ResolvedAt     *time.Time              `json:"resolved_at,omitempty"`
}

func toWithdrawalResponse(w *ledger.Withdrawal) withdrawalResponse {
	return withdrawalResponse{
		ID:             w.ID,
		AccountID:      w.AccountID,
		Amount:         w.Amount,
		PaymentMethod:  w.PaymentMethod,
		PaymentDetails: w.PaymentDetails,
		Status:         w.Status,
		CreatedAt:      w.CreatedAt,
		ResolvedAt:     w.ResolvedAt,
	}
}

func (h *Handler) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	filter := ledger.WithdrawalFilter{Limit: respond.Limit(r, 100, 1000)}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(ledger.WithdrawalStatus(s))
	}

	if s := r.URL.Query().Get("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, r, &respond.RequestError{Message: "invalid account_id"})
			return
		}

		filter.AccountID = &id
	}

	ws, err := h.ledger.ListWithdrawals(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]withdrawalResponse, len(ws))
	for i, wd := range ws {
		resp[i] = toWithdrawalResponse(wd)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type resolveRequest struct {
	Decision ledger.Decision `json:"decision" validate:"required,oneof=approve reject"`
}

func (h *Handler) resolveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, &respond.RequestError{Message: "invalid id"})
		return
	}

	var req resolveRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	wd, err := h.facade.ResolveWithdrawal(r.Context(), middleware.AccountFrom(r.Context()).ID, id, req.Decision)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toWithdrawalResponse(wd))
}

type reconcileResponse struct {
	AccountID  uuid.UUID `json:"account_id"`
	Balance    int64     `json:"balance"`
	EntrySum   int64     `json:"entry_sum"`
	EntryCount int       `json:"entry_count"`
	Balanced   bool      `json:"balanced"`
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, &respond.RequestError{Message: "invalid id"})
		return
	}

	rec, err := h.ledger.Reconcile(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, reconcileResponse{
		AccountID:  rec.AccountID,
		Balance:    rec.Balance,
		EntrySum:   rec.EntrySum,
		EntryCount: rec.EntryCount,
		Balanced:   rec.Balanced(),
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.facade.Stats(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, st)
}

type auditResponse struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   *uuid.UUID     `json:"actor_id,omitempty"`
	Action    audit.Action   `json:"action"`
	Subject   string         `json:"subject"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (h *Handler) audits(w http.ResponseWriter, r *http.Request) {
	events, err := h.audit.List(r.Context(), respond.Limit(r, audit.DefaultListLimit, audit.MaxListLimit))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]auditResponse, len(events))
	for i, e := range events {
		resp[i] = auditResponse{
			ID:        e.ID,
			ActorID:   e.ActorID,
			Action:    e.Action,
			Subject:   e.Subject,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

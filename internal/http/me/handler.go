package me

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/account"
	"github.com/MrJamesThe3rd/intima/internal/audit"
	"github.com/MrJamesThe3rd/intima/internal/http/middleware"
	"github.com/MrJamesThe3rd/intima/internal/http/respond"
)

type Accounts interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	VerifyAge(ctx context.Context, id uuid.UUID) error
}

type Audit interface {
	Record(ctx context.Context, actor uuid.UUID, action audit.Action, subject string, details map[string]any)
	Report(ctx context.Context, actor uuid.UUID, kind string, details map[string]any) (*audit.Event, error)
}

type Handler struct {
	accounts Accounts
	audit    Audit
}

func NewHandler(accounts Accounts, audit Audit) *Handler {
	return &Handler{accounts: accounts, audit: audit}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/verify-age", h.verifyAge)
}

// SecurityRoutes accepts audit events reported by clients.
func (h *Handler) SecurityRoutes(r chi.Router) {
	r.Post("/audit", h.report)
}

type accountResponse struct {
	ID          uuid.UUID    `json:"id"`
	Role        account.Role `json:"role"`
	AgeVerified bool         `json:"age_verified"`
	InviteCode  string       `json:"invite_code"`
	Balance     int64        `json:"balance"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	acc, err := h.accounts.Get(r.Context(), middleware.AccountFrom(r.Context()).ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, accountResponse{
		ID:          acc.ID,
		Role:        acc.Role,
		AgeVerified: acc.AgeVerified,
		InviteCode:  acc.InviteCode,
		Balance:     acc.Balance,
		CreatedAt:   acc.CreatedAt,
	})
}

func (h *Handler) verifyAge(w http.ResponseWriter, r *http.Request) {
	id := middleware.AccountFrom(r.Context()).ID

	if err := h.accounts.VerifyAge(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	h.audit.Record(r.Context(), id, audit.ActionAgeVerified, id.String(), nil)

	w.WriteHeader(http.StatusNoContent)
}

type reportRequest struct {
	Kind    string         `json:"kind" validate:"required,max=100"`
	Details map[string]any `json:"details"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.audit.Report(r.Context(), middleware.AccountFrom(r.Context()).ID, req.Kind, req.Details)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{"id": e.ID, "created_at": e.CreatedAt})
}

package wallet

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/http/middleware"
	"github.com/MrJamesThe3rd/intima/internal/http/respond"
	"github.com/MrJamesThe3rd/intima/internal/ledger"
	"github.com/MrJamesThe3rd/intima/internal/session"
)

type Ledger interface {
	Statement(ctx context.Context, accountID uuid.UUID, limit int) (*ledger.Statement, error)
	Purchase(ctx context.Context, accountID uuid.UUID, packageID, paymentRef string) (*ledger.Entry, error)
}

type Facade interface {
	SendGift(ctx context.Context, accountID uuid.UUID, giftID string) (*session.GiftResult, error)
	RequestWithdrawal(ctx context.Context, req ledger.WithdrawalRequest) (*ledger.Withdrawal, error)
}

type Handler struct {
	ledger Ledger
	facade Facade
}

func NewHandler(l Ledger, f Facade) *Handler {
	return &Handler{ledger: l, facade: f}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.statement)
	r.Get("/catalog", h.catalog)
	r.Post("/purchase", h.purchase)
	r.Post("/gifts", h.sendGift)
	r.Post("/withdrawals", h.requestWithdrawal)
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	st, err := h.ledger.Statement(r.Context(), middleware.AccountFrom(r.Context()).ID, respond.Limit(r, 50, 500))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, walletResponse{Balance: st.Balance, Entries: toEntryResponseList(st.Entries)})
}

func (h *Handler) catalog(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, catalog())
}

type purchaseRequest struct {
	PackageID  string `json:"package_id" validate:"required"`
	PaymentRef string `json:"payment_ref" validate:"required,max=200"`
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	acc := middleware.AccountFrom(r.Context())

	entry, err := h.ledger.Purchase(r.Context(), acc.ID, req.PackageID, req.PaymentRef)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toEntryResponse(entry))
}

type giftRequest struct {
	Gift string `json:"gift" validate:"required"`
}

type giftResponseBody struct {
	Gift      string        `json:"gift"`
	Amount    int64         `json:"amount"`
	PartnerID uuid.UUID     `json:"partner_id"`
	Entry     entryResponse `json:"entry"`
}

func (h *Handler) sendGift(w http.ResponseWriter, r *http.Request) {
	var req giftRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.facade.SendGift(r.Context(), middleware.AccountFrom(r.Context()).ID, req.Gift)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, giftResponseBody{
		Gift:      res.Gift.ID,
		Amount:    res.Gift.Price,
		PartnerID: res.Partner,
		Entry:     toEntryResponse(res.Transfer.Debit),
	})
}

type withdrawalRequest struct {
	Amount         int64                `json:"amount"`
	PaymentMethod  ledger.PaymentMethod `json:"payment_method" validate:"required"`
	PaymentDetails string               `json:"payment_details" validate:"required,max=500"`
}

func (h *Handler) requestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req withdrawalRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	wd, err := h.facade.RequestWithdrawal(r.Context(), ledger.WithdrawalRequest{
		AccountID:      middleware.AccountFrom(r.Context()).ID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toWithdrawalResponse(wd))
}

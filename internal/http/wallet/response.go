package wallet

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/ledger"
)

type entryResponse struct {
	ID           uuid.UUID     `json:"id"`
	Delta        int64         `json:"delta"`
	Reason       ledger.Reason `json:"reason"`
	Counterpart  *uuid.UUID    `json:"counterpart_id,omitempty"`
	WithdrawalID *uuid.UUID    `json:"withdrawal_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

func toEntryResponse(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		Delta:        e.Delta,
		Reason:       e.Reason,
		Counterpart:  e.Counterpart,
		WithdrawalID: e.WithdrawalID,
		CreatedAt:    e.CreatedAt,
	}
}

func toEntryResponseList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}

	return resp
}

type walletResponse struct {
	Balance int64           `json:"balance"`
	Entries []entryResponse `json:"entries"`
}

type withdrawalResponse struct {
	ID            uuid.UUID               `json:"id"`
	Amount        int64                   `json:"amount"`
	PaymentMethod ledger.PaymentMethod    `json:"payment_method"`
	Status        ledger.WithdrawalStatus `json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
	ResolvedAt    *time.Time              `json:"resolved_at,omitempty"`
}

func toWithdrawalResponse(w *ledger.Withdrawal) withdrawalResponse {
	return withdrawalResponse{
		ID:            w.ID,
		Amount:        w.Amount,
		PaymentMethod: w.PaymentMethod,
		Status:        w.Status,
		CreatedAt:     w.CreatedAt,
		ResolvedAt:    w.ResolvedAt,
	}
}

type catalogResponse struct {
	Packages []packageResponse `json:"packages"`
	Gifts    []giftResponse    `json:"gifts"`
}

type packageResponse struct {
	ID      string `json:"id"`
	Credits int64  `json:"credits"`
	Price   string `json:"price"`
}

type giftResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func catalog() catalogResponse {
	resp := catalogResponse{}

	for _, p := range ledger.Packages() {
		resp.Packages = append(resp.Packages, packageResponse{ID: p.ID, Credits: p.Credits, Price: p.Price})
	}

	for _, g := range ledger.Gifts() {
		resp.Gifts = append(resp.Gifts, giftResponse{ID: g.ID, Name: g.Name, Price: g.Price})
	}

	return resp
}

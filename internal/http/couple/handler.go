package couple

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/http/middleware"
	"github.com/MrJamesThe3rd/intima/internal/http/respond"
	"github.com/MrJamesThe3rd/intima/internal/media"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
	"github.com/MrJamesThe3rd/intima/internal/session"
)

type Facade interface {
	Couple(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error)
	Pair(ctx context.Context, accountID uuid.UUID, inviteCode string) (*pairing.Couple, error)
	Unpair(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error)
	ConsentState(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (consent.State, error)
	Grant(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (consent.State, error)
	Revoke(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (consent.State, error)
	StartLiveSession(ctx context.Context, accountID uuid.UUID) (*session.LiveSession, error)
	ListMedia(ctx context.Context, accountID uuid.UUID, limit int) ([]*media.Item, error)
	UploadMedia(ctx context.Context, accountID uuid.UUID, p media.UploadParams) (*media.Item, error)
	Icebreaker(ctx context.Context, accountID uuid.UUID, topic string) (string, error)
}

type Handler struct {
	facade Facade
}

func NewHandler(facade Facade) *Handler {
	return &Handler{facade: facade}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Delete("/", h.unpair)
	r.Post("/pair", h.pair)

	r.Get("/consent/{capability}", h.consent(h.facade.ConsentState))
	r.Put("/consent/{capability}", h.consent(h.facade.Grant))
	r.Delete("/consent/{capability}", h.consent(h.facade.Revoke))

	r.Post("/live", h.startLive)
	r.Get("/vault", h.listMedia)
	r.Post("/vault", h.uploadMedia)
	r.Post("/icebreaker", h.icebreaker)
}

type coupleResponse struct {
	ID          uuid.UUID      `json:"id"`
	PartnerID   uuid.UUID      `json:"partner_id"`
	Status      pairing.Status `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	DissolvedAt *time.Time     `json:"dissolved_at,omitempty"`
}

func toCoupleResponse(c *pairing.Couple, caller uuid.UUID) coupleResponse {
	partner, _ := c.Partner(caller)

	return coupleResponse{
		ID:          c.ID,
		PartnerID:   partner,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		DissolvedAt: c.DissolvedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	acc := middleware.AccountFrom(r.Context())

	c, err := h.facade.Couple(r.Context(), acc.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCoupleResponse(c, acc.ID))
}

type pairRequest struct {
	InviteCode string `json:"invite_code" validate:"required,max=32"`
}

func (h *Handler) pair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	acc := middleware.AccountFrom(r.Context())

	c, err := h.facade.Pair(r.Context(), acc.ID, req.InviteCode)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toCoupleResponse(c, acc.ID))
}

func (h *Handler) unpair(w http.ResponseWriter, r *http.Request) {
	acc := middleware.AccountFrom(r.Context())

	c, err := h.facade.Unpair(r.Context(), acc.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCoupleResponse(c, acc.ID))
}

type consentResponse struct {
	CoupleID    uuid.UUID          `json:"couple_id"`
	Capability  consent.Capability `json:"capability"`
	State       string             `json:"state"`
	Mutual      bool               `json:"mutual"`
	ConsentedBy *uuid.UUID         `json:"consented_by,omitempty"`
}

func toConsentResponse(st consent.State) consentResponse {
	return consentResponse{
		CoupleID:    st.CoupleID,
		Capability:  st.Capability,
		State:       st.Kind.String(),
		Mutual:      st.Mutual(),
		ConsentedBy: st.ConsentedBy,
	}
}

type consentFunc func(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (consent.State, error)

func (h *Handler) consent(fn consentFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capability, err := consent.ParseCapability(chi.URLParam(r, "capability"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		st, err := fn(r.Context(), middleware.AccountFrom(r.Context()).ID, capability)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, toConsentResponse(st))
	}
}

func (h *Handler) startLive(w http.ResponseWriter, r *http.Request) {
	ls, err := h.facade.StartLiveSession(r.Context(), middleware.AccountFrom(r.Context()).ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ls)
}

func (h *Handler) listMedia(w http.ResponseWriter, r *http.Request) {
	items, err := h.facade.ListMedia(r.Context(), middleware.AccountFrom(r.Context()).ID, respond.Limit(r, 50, 200))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if items == nil {
		items = []*media.Item{}
	}

	respond.JSON(w, http.StatusOK, items)
}

func (h *Handler) uploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, &respond.RequestError{Message: "file field is required"})
		return
	}
	defer file.Close()

	item, err := h.facade.UploadMedia(r.Context(), middleware.AccountFrom(r.Context()).ID, media.UploadParams{
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, item)
}

type icebreakerRequest struct {
	Topic string `json:"topic" validate:"max=200"`
}

type icebreakerResponse struct {
	Suggestion string `json:"suggestion"`
}

func (h *Handler) icebreaker(w http.ResponseWriter, r *http.Request) {
	var req icebreakerRequest
	if r.ContentLength != 0 {
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	text, err := h.facade.Icebreaker(r.Context(), middleware.AccountFrom(r.Context()).ID, req.Topic)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, icebreakerResponse{Suggestion: text})
}

package cycle

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/cycle"
	"github.com/MrJamesThe3rd/intima/internal/http/middleware"
	"github.com/MrJamesThe3rd/intima/internal/http/respond"
)

type Service interface {
	Append(ctx context.Context, accountID uuid.UUID, p cycle.AppendParams) (*cycle.Log, error)
	List(ctx context.Context, accountID uuid.UUID, limit int) ([]*cycle.Log, error)
	Predict(ctx context.Context, accountID uuid.UUID, today time.Time) (*cycle.Prediction, bool, error)
	Import(ctx context.Context, accountID uuid.UUID, r io.Reader) (*cycle.ImportResult, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.append)
	r.Get("/prediction", h.prediction)
	r.Post("/import", h.importCSV)
}

type logResponse struct {
	ID        uuid.UUID  `json:"id"`
	StartDate string     `json:"start_date"`
	Symptoms  []string   `json:"symptoms"`
	Flow      cycle.Flow `json:"flow_intensity"`
	CreatedAt time.Time  `json:"created_at"`
}

func toLogResponse(l *cycle.Log) logResponse {
	symptoms := l.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	return logResponse{
		ID:        l.ID,
		StartDate: l.StartDate.Format(time.DateOnly),
		Symptoms:  symptoms,
		Flow:      l.Flow,
		CreatedAt: l.CreatedAt,
	}
}

func toLogResponseList(logs []*cycle.Log) []logResponse {
	resp := make([]logResponse, len(logs))
	for i, l := range logs {
		resp[i] = toLogResponse(l)
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.List(r.Context(), middleware.AccountFrom(r.Context()).ID, respond.Limit(r, 24, 500))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toLogResponseList(logs))
}

type appendRequest struct {
	StartDate string     `json:"start_date" validate:"required,datetime=2006-01-02"`
	Symptoms  []string   `json:"symptoms" validate:"max=30,dive,max=50"`
	Flow      cycle.Flow `json:"flow_intensity" validate:"required"`
}

func (h *Handler) append(w http.ResponseWriter, r *http.Request) {
	var req appendRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		respond.Error(w, r, cycle.ErrInvalidDate)
		return
	}

	l, err := h.svc.Append(r.Context(), middleware.AccountFrom(r.Context()).ID, cycle.AppendParams{
		StartDate: start,
		Symptoms:  req.Symptoms,
		Flow:      req.Flow,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toLogResponse(l))
}

type predictionResponse struct {
	LastPeriod    string `json:"last_period"`
	NextPeriod    string `json:"next_period"`
	OvulationDay  string `json:"ovulation_day"`
	FertileStart  string `json:"fertile_window_start"`
	FertileEnd    string `json:"fertile_window_end"`
	DaysUntilNext int    `json:"days_until_next"`
	IsFertile     bool   `json:"is_fertile"`
	IsOvulating   bool   `json:"is_ovulating"`
	LogCount      int    `json:"log_count"`
}

// prediction accepts ?today=YYYY-MM-DD so clients can evaluate in their own
// calendar day.
func (h *Handler) prediction(w http.ResponseWriter, r *http.Request) {
	today := h.now()

	if s := r.URL.Query().Get("today"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			respond.Error(w, r, &respond.RequestError{Message: "today must be YYYY-MM-DD"})
			return
		}

		today = t
	}

	p, ok, err := h.svc.Predict(r.Context(), middleware.AccountFrom(r.Context()).ID, today)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respond.JSON(w, http.StatusOK, predictionResponse{
		LastPeriod:    p.LastPeriod.Format(time.DateOnly),
		NextPeriod:    p.NextPeriod.Format(time.DateOnly),
		OvulationDay:  p.OvulationDay.Format(time.DateOnly),
		FertileStart:  p.FertileStart.Format(time.DateOnly),
		FertileEnd:    p.FertileEnd.Format(time.DateOnly),
		DaysUntilNext: p.DaysUntilNext,
		IsFertile:     p.IsFertile,
		IsOvulating:   p.IsOvulating,
		LogCount:      p.LogCount,
	})
}

type importResponse struct {
	Imported   int           `json:"imported"`
	Duplicates int           `json:"duplicates"`
	Logs       []logResponse `json:"logs"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Error(w, r, &respond.RequestError{Message: "failed to parse form: " + err.Error()})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, &respond.RequestError{Message: "file field is required"})
		return
	}
	defer file.Close()

	res, err := h.svc.Import(r.Context(), middleware.AccountFrom(r.Context()).ID, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, importResponse{
		Imported:   len(res.Imported),
		Duplicates: len(res.Duplicates),
		Logs:       toLogResponseList(res.Imported),
	})
}

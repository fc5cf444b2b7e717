package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/intima/internal/http/admin"
	"github.com/MrJamesThe3rd/intima/internal/http/couple"
	"github.com/MrJamesThe3rd/intima/internal/http/cycle"
	"github.com/MrJamesThe3rd/intima/internal/http/me"
	authmw "github.com/MrJamesThe3rd/intima/internal/http/middleware"
	"github.com/MrJamesThe3rd/intima/internal/http/respond"
	"github.com/MrJamesThe3rd/intima/internal/http/wallet"
	"github.com/MrJamesThe3rd/intima/internal/metrics"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

type Handlers struct {
	Me     *me.Handler
	Couple *couple.Handler
	Wallet *wallet.Handler
	Cycle  *cycle.Handler
	Admin  *admin.Handler
}

func New(opts Options, auth *authmw.Auth, db Pinger, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}

		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Timeout > 0 {
			r.Use(middleware.Timeout(opts.Timeout))
		}

		r.Use(auth.Authenticate)

		r.Route("/me", h.Me.Routes)
		r.Route("/security", h.Me.SecurityRoutes)
		r.Route("/couple", h.Couple.Routes)
		r.Route("/wallet", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Wallet.Routes(r)
		})
		r.Route("/cycle", h.Cycle.Routes)
		r.Route("/admin", h.Admin.Routes)
	})

	return router
}

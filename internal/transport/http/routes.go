package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"job-assignment-service/internal/auth"
	"job-assignment-service/internal/metrics"
)

type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// normalized phone numbers allowed on /api/v1/admin
	AdminPhones []string
	// nil disables request metrics
	Metrics *metrics.Middleware
}

func Routes(h *Handler, authn *auth.Authenticator, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler)
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/verify-otp", h.VerifyOTP)
			r.Post("/resend-otp", h.ResendOTP)
			r.With(authn.Authenticate).Post("/logout", h.Logout)
		})

		r.Route("/verification", func(r chi.Router) {
			r.Use(authn.Authenticate, auth.RequireVerified)
			r.Post("/pan", h.VerifyPAN)
			r.Post("/bank", h.VerifyBank)
			r.Get("/status", h.VerificationStatus)
			r.Get("/panel-access", h.PanelAccess)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authn.Authenticate, auth.RequireVerified, auth.RequireAdmin(cfg.AdminPhones))
			r.Post("/verify-id/{phone}", h.ApproveID)
			r.Get("/partners", h.ListPartners)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Use(authn.Authenticate, auth.RequireVerified)
			r.Post("/", h.CreateJob)
			r.Get("/", h.ListJobs)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetJob)
				r.Put("/", h.UpdateJob)
				r.Delete("/", h.DeleteJob)
				r.Post("/start", h.StartJob)
				r.Post("/pause", h.PauseJob)
				r.Post("/finish", h.FinishJob)
				r.Get("/history", h.JobHistory)
				r.Post("/upload", h.UploadProgress)
			})
		})
	})

	return r
}

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the route table. Note routes sit behind the bearer-token gate.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	if s.corsOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{s.corsOrigin},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)

	r.Post("/send-otp", s.handleSendOTP)
	r.Post("/send-otp-signup", s.handleSendOTPSignup)
	r.Post("/verify-otp", s.handleVerifyOTP)

	r.Route("/notes", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.handleListNotes)
		r.Post("/", s.handleAddNote)
		r.Delete("/{noteId}", s.handleDeleteNote)
	})

	return r
}

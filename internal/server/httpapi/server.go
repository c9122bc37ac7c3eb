// Package httpapi exposes the notekeeper services over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	pingTimeout       = 2 * time.Second
	maxBodyBytes      = 1 << 20
)

// AuthService is the part of services.AuthService the handlers use.
type AuthService interface {
	RequestSigninOTP(ctx context.Context, email string) error
	RequestSignupOTP(ctx context.Context, req services.SignupRequest) (*models.User, error)
	VerifyOTP(ctx context.Context, email, code string) (*services.Session, error)
	VerifyToken(token string) (*services.Identity, error)
}

// NoteService is the part of services.NoteService the handlers use.
type NoteService interface {
	ListNotes(ctx context.Context, userID string) (*services.NotesView, error)
	AddNote(ctx context.Context, userID, text string) ([]*models.Note, error)
	RemoveNote(ctx context.Context, userID, noteID string) ([]*models.Note, error)
}

// Pinger reports database reachability for /healthz. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	address    string
	auth       AuthService
	notes      NoteService
	db         Pinger
	logger     logging.Logger
	corsOrigin string
}

func NewHTTPServer(a string, l logging.Logger, as AuthService, ns NoteService, db Pinger, corsOrigin string) *HTTPServer {
	return &HTTPServer{
		address:    a,
		logger:     l.With("module", "http_server"),
		auth:       as,
		notes:      ns,
		db:         db,
		corsOrigin: corsOrigin,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}

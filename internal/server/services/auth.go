// Package services contains server-side business logic. This file implements
// AuthService: emailed one-time passcodes for sign-in and sign-up, and the
// session tokens minted once a passcode checks out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/mailer"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
)

// Passcodes are drawn uniformly from this closed range, so always six digits.
const (
	otpMin = 100000
	otpMax = 999999
)

// OTPStore holds at most one pending passcode per email. Consume must be
// atomic: of two concurrent calls with the right code only one succeeds.
type OTPStore interface {
	Put(email, code string)
	Consume(email, code string) error
	TTL() time.Duration
}

// SignupRequest carries the raw sign-up form fields.
type SignupRequest struct {
	Name  string
	DOB   string
	Email string
}

// Session is the result of a successful passcode check.
type Session struct {
	Token  string
	UserID string
}

// Identity is what a verified session token asserts.
type Identity struct {
	UserID string
	Email  string
}

type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	otp                         OTPStore
	mailer                      mailer.Mailer
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	newCode                     func() (string, error)
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, otp OTPStore, ml mailer.Mailer, l logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		otp:                         otp,
		mailer:                      ml,
		logger:                      l.With("module", "auth_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		newCode: func() (string, error) {
			return common.GenerateNumericCode(otpMin, otpMax)
		},
	}
}

// RequestSigninOTP emails a passcode to an existing user. Unknown addresses
// get common.ErrorNotFound and no code is stored.
func (s *AuthService) RequestSigninOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrInvalidInput)
	}

	if _, err := s.repomanager.Users(s.db).GetByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error searching user: %w", err)
	}

	return s.issueOTP(ctx, email)
}

// RequestSignupOTP creates a user with no notes and emails a passcode.
//
// The user row and the email go together: the insert runs in a transaction
// that commits only after the mail is accepted, and a duplicate email fails
// with common.ErrConflict before anything is sent.
func (s *AuthService) RequestSignupOTP(ctx context.Context, req SignupRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.DOB) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrInvalidInput)
	}

	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, &models.User{Name: name, DOB: dob, Email: email})
		if err != nil {
			if errors.Is(err, common.ErrConflict) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		user = created
		return s.issueOTP(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// VerifyOTP consumes a matching passcode and mints a session token.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*Session, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, fmt.Errorf("%w: email and otp are required", common.ErrInvalidInput)
	}

	if err := s.otp.Consume(email, code); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "otp verified", "user_id", user.ID)
	return &Session{Token: token, UserID: user.ID}, nil
}

// VerifyToken checks a session token. Any failure matches common.ErrInvalidToken.
func (s *AuthService) VerifyToken(token string) (*Identity, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// issueOTP is shared by both flows: new code, replace any pending one, send it.
func (s *AuthService) issueOTP(ctx context.Context, email string) error {
	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("error generating otp: %w", err)
	}

	s.otp.Put(email, code)

	if err := s.mailer.Send(ctx, email, mailer.OTPSubject, mailer.OTPBody(code, s.otp.TTL())); err != nil {
		return fmt.Errorf("error sending otp: %w", err)
	}

	s.logger.Info(ctx, "otp sent", "email", email)
	return nil
}

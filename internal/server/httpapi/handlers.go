package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const banner = "API is working! Use /send-otp and /verify-otp endpoints."

type sendOTPRequest struct {
	Email string `json:"email"`
}

type signupRequest struct {
	Name  string `json:"name"`
	DOB   string `json:"dob"`
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type addNoteRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type signupResponse struct {
	Message   string `json:"message"`
	ID        string `json:"id"`
	OTPStatus string `json:"otpStatus"`
}

type verifyOTPResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

type noteDTO struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type notesResponse struct {
	Notes []noteDTO `json:"notes"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type notesChangedResponse struct {
	Message string    `json:"message"`
	Notes   []noteDTO `json:"notes"`
}

func toNoteDTOs(notes []*models.Note) []noteDTO {
	out := make([]noteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteDTO{ID: n.ID, Content: n.Text})
	}
	return out
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, banner)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err.Error())
			s.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.auth.RequestSigninOTP(r.Context(), req.Email); err != nil {
		s.writeUserError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, messageResponse{Message: "OTP sent successfully"})
}

func (s *HTTPServer) handleSendOTPSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.auth.RequestSignupOTP(r.Context(), services.SignupRequest{
		Name:  req.Name,
		DOB:   req.DOB,
		Email: req.Email,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			err = fmt.Errorf("email %w", err)
		}
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, signupResponse{
		Message:   "User created and OTP sent successfully",
		ID:        user.ID,
		OTPStatus: "OTP sent",
	})
}

func (s *HTTPServer) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess, err := s.auth.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, verifyOTPResponse{
		Message: "OTP verified successfully",
		Token:   sess.Token,
		UserID:  sess.UserID,
	})
}

func (s *HTTPServer) handleListNotes(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	view, err := s.notes.ListNotes(r.Context(), id.UserID)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, notesResponse{
		Notes: toNoteDTOs(view.Notes),
		Name:  view.Name,
		Email: view.Email,
	})
}

func (s *HTTPServer) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	var req addNoteRequest
	if !s.decode(w, r, &req) {
		return
	}

	notes, err := s.notes.AddNote(r.Context(), id.UserID, req.Text)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, notesChangedResponse{
		Message: "Note added successfully",
		Notes:   toNoteDTOs(notes),
	})
}

func (s *HTTPServer) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	notes, err := s.notes.RemoveNote(r.Context(), id.UserID, chi.URLParam(r, "noteId"))
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, notesChangedResponse{
		Message: "Note deleted successfully",
		Notes:   toNoteDTOs(notes),
	})
}

// writeUserError names the missing thing. Every lookup in this API is by user.
func (s *HTTPServer) writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		err = fmt.Errorf("user %w", err)
	}
	s.writeError(w, r, err)
}

// decode reads a JSON body into v. It writes a 400 and returns false on failure.
func (s *HTTPServer) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed JSON body", common.ErrInvalidInput))
		return false
	}
	return true
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "write response", "error", err.Error())
	}
}

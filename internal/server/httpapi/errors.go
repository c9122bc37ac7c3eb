package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/go-chi/chi/v5/middleware"
)

// errorBody carries the message under both keys; older clients read "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps service errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden), errors.Is(err, common.ErrInvalidToken):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrOTPExpiredOrMissing),
		errors.Is(err, common.ErrOTPMismatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError renders err. Internal failures are logged and never described
// to the client.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error(),
		)
		msg = common.ErrorInternal.Error()
	}

	s.writeJSON(w, r, status, errorBody{Error: msg, Message: msg})
}

package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"job-assignment-service/internal/service"
)

type apiError struct {
	Message string `json:"message"`
}

type apiMessage struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apiError{Message: msg})
}

// writeServiceError is the single place where service error kinds become
// status codes. Persistence and unknown errors never leak their cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var rejected *service.VerificationRejectedError

	switch {
	case errors.Is(err, service.ErrJobNotFound), errors.Is(err, service.ErrPartnerNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrPartnerAlreadyAssigned),
		errors.Is(err, service.ErrNoPartnerAssigned):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPartnerExists),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrAlreadyVerified):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &rejected):
		writeErr(w, http.StatusBadRequest, rejected.Message)
	case errors.Is(err, service.ErrVerificationUnavailable):
		zap.S().Named("http").Warnw("verification provider unavailable", "path", r.URL.Path, "error", err)
		writeErr(w, http.StatusBadGateway, service.ErrVerificationUnavailable.Error())
	case errors.Is(err, service.ErrPersistence):
		// The engine already logged the cause.
		writeErr(w, http.StatusInternalServerError, err.Error())
	default:
		zap.S().Named("http").Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

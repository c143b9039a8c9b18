package errs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrResponse is the JSON body written by HTTPErrorResponse.
type ErrResponse struct {
	Error ServiceError `json:"error"`
}

// ServiceError describes an error in a form that is safe to return to a client.
type ServiceError struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
	Param   string `json:"param,omitempty"`
}

// HTTPStatus maps an error kind to an HTTP status code.
func HTTPStatus(k Kind) int {
	switch k {
	case Invalid, Validation, InvalidRequest:
		return http.StatusBadRequest
	case Exist:
		return http.StatusConflict
	case NotExist:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case Unauthorized:
		return http.StatusForbidden
	case RateLimited:
		return http.StatusTooManyRequests
	case IO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorResponse logs the error and writes a JSON error response with a status
// code derived from the error kind. Errors that aren't *Error are reported as
// internal errors without leaking their message.
func HTTPErrorResponse(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if err == nil {
		logger.Error().Msg("nil error passed to error response")
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	var e *Error
	if !errors.As(err, &e) {
		logger.Error().Err(err).Msg("unknown error")
		writeErrorResponse(w, logger, http.StatusInternalServerError, ErrResponse{
			Error: ServiceError{
				Kind:    Internal.String(),
				Message: "unexpected error",
			},
		})

		return
	}

	code := HTTPStatus(e.Kind)

	logger.Error().
		Err(err).
		Int("http_status", code).
		Str("kind", e.Kind.String()).
		Str("param", string(e.Param)).
		Strs("stack", OpStack(err)).
		Msg("error response")

	writeErrorResponse(w, logger, code, ErrResponse{
		Error: ServiceError{
			Kind:    e.Kind.String(),
			Message: Message(err),
			Param:   string(e.Param),
		},
	})
}

func writeErrorResponse(w http.ResponseWriter, logger zerolog.Logger, code int, body ErrResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger.Error().Err(err).Msg("encoding error response")
	}
}

package airtable

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Reason is a coarse classification of an API failure.
type Reason string

const (
	ReasonDuplicateTable  Reason = "duplicate_table"
	ReasonInvalidRequest  Reason = "invalid_request"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotFound        Reason = "not_found"
	ReasonRateLimited     Reason = "rate_limited"
	ReasonUnknown         Reason = "unknown"
)

// APIError is returned when the API responds with a non 2xx status code.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("request failed with status code %d", e.StatusCode)

	if e.Type != "" {
		msg += ": " + e.Type
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// Reason classifies the error based on the status code and error type.
func (e *APIError) Reason() Reason {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ReasonUnauthenticated
	case http.StatusNotFound:
		return ReasonNotFound
	case http.StatusTooManyRequests:
		return ReasonRateLimited
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if strings.HasPrefix(e.Type, "DUPLICATE_TABLE") {
			return ReasonDuplicateTable
		}

		return ReasonInvalidRequest
	}

	return ReasonUnknown
}

// Details returns the response body in a form that can be embedded in a JSON
// document: as raw JSON when the body is valid JSON, otherwise as a string.
// It returns nil if there was no body.
func (e *APIError) Details() any {
	if len(e.Body) == 0 {
		return nil
	}

	if json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}

	return string(e.Body)
}

// The API reports errors either as {"error": "NOT_FOUND"} or as
// {"error": {"type": "...", "message": "..."}}.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

type errorObject struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	b := errorBody{}
	if err := json.Unmarshal(body, &b); err != nil || len(b.Error) == 0 {
		return e
	}

	var typ string
	if err := json.Unmarshal(b.Error, &typ); err == nil {
		e.Type = typ
		return e
	}

	obj := errorObject{}
	if err := json.Unmarshal(b.Error, &obj); err == nil {
		e.Type = obj.Type
		e.Message = obj.Message
	}

	return e
}

// NetworkError is returned when no response was received from the API.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

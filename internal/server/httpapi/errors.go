package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/forumkit/forumkit/internal/common"
)

// apiError is one element of the JSON-API style error envelope:
// {"errors":[{"status","code","detail"}]}.
type apiError struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

type errorEnvelope struct {
	Errors []apiError `json:"errors"`
}

// writeError maps a service error onto an HTTP status and writes the error
// envelope. Unrecognized errors become an opaque 500.
func writeError(w http.ResponseWriter, err error) {

	var status int
	var code string
	detail := ""

	switch {
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusUnprocessableEntity
		code = "validation_error"
		detail = strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
	case errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusUnprocessableEntity
		code = "taken"
		detail = "username or email is already taken"
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
		code = "resource_not_found"
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
		code = "not_authenticated"
	case errors.Is(err, common.ErrorForbidden):
		status = http.StatusForbidden
		code = "permission_denied"
	case errors.Is(err, common.ErrCSRFTokenMismatch):
		status = http.StatusBadRequest
		code = "csrf_token_mismatch"
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
	}

	writeErrors(w, status, []apiError{{Status: strconv.Itoa(status), Code: code, Detail: detail}})
}

func writeErrors(w http.ResponseWriter, status int, errs []apiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// statusFor traduz os códigos dos use cases para HTTP.
func statusFor(err error) (int, string) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case usecase.CodeValidation, usecase.CodeInvalidCSV, usecase.CodeNoValidLeads:
			return http.StatusBadRequest, de.Code
		case usecase.CodeLeadNotFound:
			return http.StatusNotFound, de.Code
		case usecase.CodeEmailTaken:
			return http.StatusConflict, de.Code
		case usecase.CodeInvalidCredentials, usecase.CodeUnauthenticated:
			return http.StatusUnauthorized, de.Code
		default:
			return http.StatusUnprocessableEntity, de.Code
		}
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		return http.StatusInternalServerError, te.Code
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

func respondUsecaseError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "erro interno"
	}
	writeError(w, status, code, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/pkg/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// MessageResponse is the body of a successful request with nothing but a message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeMethodBlocked = "METHOD_NOT_ALLOWED"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, ErrorResponse{Success: false, Message: message, Code: code})
}

func OK(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: message})
}

func Created(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusCreated, MessageResponse{Success: true, Message: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusMethodNotAllowed, message, CodeMethodBlocked)
}

// StatusFor maps an error kind onto an HTTP status. Every client-side kind,
// auth failures included, is a 400.
func StatusFor(kind domain.ErrorKind) int {
	if kind == domain.KindServer {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// FromError writes err as JSON. Domain errors keep their client message;
// anything else becomes a generic server error. Server-side causes are only logged.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.ErrorContext(r.Context(), "Unhandled error", "error", err, "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, domain.MsgServerError, domain.KindServer.String())
		return
	}

	if de.Kind == domain.KindServer {
		logger.ErrorContext(r.Context(), de.Message, "error", de.Err, "path", r.URL.Path)
	}
	WriteError(w, StatusFor(de.Kind), de.Message, de.Kind.String())
}

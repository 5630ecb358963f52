package handler

import (
	"errors"
	"net/http"

	"employee-service/internal/core"
)

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeInternal       = "INTERNAL"
)

// ErrorInfo is the body of every non-validation error response.
type ErrorInfo struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// handleServiceError maps service errors to HTTP status codes
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *core.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case core.KindNotFound:
			respondError(w, domainErr.Code, domainErr.Error(), http.StatusNotFound)
			return
		case core.KindAlreadyExists:
			respondError(w, domainErr.Code, domainErr.Error(), http.StatusBadRequest)
			return
		}
	}

	h.log.WithContext(r.Context()).Errorf("internal error: %s %s: %v", r.Method, r.URL.Path, err)
	respondError(w, codeInternal, "internal server error", http.StatusInternalServerError)
}

package api

import (
	"errors"
	"net/http"

	"github.com/beatwave/onair/common"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// methodHandlers DICT of method-endpoint handler
type methodHandlers map[string]http.HandlerFunc

// registerPathPrefix registers new method handler for a path prefix
func registerPathPrefix(parent *mux.Router, prefix string, handler methodHandlers) *mux.Router {
	router := parent.PathPrefix(prefix).Subrouter()
	for method, handler := range handler {
		router.Methods(method).Path("").HandlerFunc(handler)
	}
	return router
}

// statusCodeForError map orchestration errors onto HTTP status codes
//
// Token problems are authentication failures, timing and state problems are
// conflicts the caller can act on, and transport problems are upstream outages.
func statusCodeForError(err error) int {
	var invalidToken common.ErrorInvalidToken
	var tokenExpired common.ErrorTokenExpired
	if errors.As(err, &invalidToken) || errors.As(err, &tokenExpired) {
		return http.StatusUnauthorized
	}

	var notYetOpen common.ErrorNotYetOpen
	var windowClosed common.ErrorWindowClosed
	var invalidTransition common.ErrorInvalidTransition
	var alreadyLive common.ErrorAlreadyLive
	if errors.As(err, &notYetOpen) || errors.As(err, &windowClosed) ||
		errors.As(err, &invalidTransition) || errors.As(err, &alreadyLive) {
		return http.StatusConflict
	}

	var transportDown common.ErrorTransportUnavailable
	if errors.As(err, &transportDown) {
		return http.StatusBadGateway
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

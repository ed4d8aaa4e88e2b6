// Package controllers holds the HTTP handlers for the bistro API. Handlers
// decode and validate input, call a service, and map failure kinds onto the
// JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/logger"
	"github.com/bistrohq/bistro/pkg/response"
)

// fail maps a service failure kind onto an HTTP status. Unknown errors are
// logged and reported as a 500 without leaking internals.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrGateway):
		response.Error(w, http.StatusBadGateway, "payment gateway error")
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

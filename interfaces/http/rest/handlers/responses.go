// Package handlers contains the REST endpoint implementations
package handlers

import (
	"errors"
	"net/http"

	"pathshala-backend/pkg/common"
	pkgerrors "pathshala-backend/pkg/errors"

	"go.uber.org/zap"
)

// maxRequestBody bounds request payloads
const maxRequestBody = 1 << 20

// respondAppError maps a taxonomy error to its HTTP status. Anything
// outside the taxonomy becomes an opaque 500.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := pkgerrors.StatusOf(err)
	code := string(pkgerrors.TypeOf(err))

	// Only the taxonomy message goes to the client; wrapped causes stay
	// in the logs
	message := "internal server error"
	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}

	common.RespondError(w, status, code, message)
}

// respondBadRequest reports a malformed or invalid request body
func respondBadRequest(w http.ResponseWriter, message string) {
	common.RespondError(w, http.StatusBadRequest, string(pkgerrors.ErrorTypeValidation), message)
}

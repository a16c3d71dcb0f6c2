// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// errorStatus maps a domain error to an HTTP status and response body.
func errorStatus(err error) (int, dto.ErrorResponse) {
	var validationErr *domainerror.ValidationError
	if errors.As(err, &validationErr) {
		message := validationErr.Message
		if validationErr.Err != nil {
			message = validationErr.Err.Error()
		}
		return http.StatusBadRequest, dto.ErrorResponse{
			Error: message,
			Code:  string(validationErr.Code),
			Field: validationErr.Field,
		}
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		status := http.StatusUnauthorized
		if authErr.Code == domainerror.ErrCodeRegistrationRejected {
			status = http.StatusUnprocessableEntity
		}
		return status, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		}
	}

	if errors.Is(err, domainerror.ErrNoActiveSession) {
		return http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Not logged in",
			Code:  string(domainerror.ErrCodeNotLoggedIn),
		}
	}

	var networkErr *domainerror.NetworkError
	if errors.As(err, &networkErr) {
		return http.StatusBadGateway, dto.ErrorResponse{
			Error:   "Finance backend request failed",
			Code:    string(networkErr.Code),
			Details: networkErr.Error(),
		}
	}

	var persistenceErr *domainerror.PersistenceError
	if errors.As(err, &persistenceErr) {
		return http.StatusInternalServerError, dto.ErrorResponse{
			Error: persistenceErr.Message,
			Code:  string(persistenceErr.Code),
		}
	}

	return http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
	}
}

// handleError writes the response for err and logs server-side failures.
func handleError(ctx *gin.Context, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"path", ctx.FullPath(),
			"request_id", ctx.GetString("request_id"),
			"error", err,
		)
	}
	ctx.JSON(status, body)
}

// warning renders a non-fatal storage failure for a successful response.
func warning(err error) string {
	if err == nil {
		return ""
	}
	slog.Warn("Session storage failed", "error", err)
	return err.Error()
}

func invalidBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
	})
}

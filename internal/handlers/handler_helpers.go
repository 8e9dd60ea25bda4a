package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/SscSPs/textile_erp/internal/middleware"
	"github.com/SscSPs/textile_erp/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// errorStatus maps an error kind to an HTTP status code.
// Duplicate and referenced errors also match ErrBusinessRule, so they are checked first.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrReferenced),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for a failed service call. Server
// errors get a generic message built from action, e.g. "Failed to create account".
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: "Failed to " + action})
		return
	}
	logger.Warn("Request rejected", slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// badRequest writes a 400 with the given message.
func badRequest(c *gin.Context, msg string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg + ": " + err.Error()})
		return
	}
	logger.Warn(msg)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

// requireUserID returns the authenticated user id, writing a 401 when it is missing.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// int64Param parses a numeric path parameter, writing a 400 on failure.
func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name+" in path", nil)
		return 0, false
	}
	return id, true
}

// bindOptionalJSON binds a JSON body that may be absent.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// recordAudit writes the audit row for a successful mutation. A failed write is
// logged and counted but never changes the response.
func recordAudit(c *gin.Context, audit portssvc.AuditSvcFacade, rec portssvc.AuditRecord) {
	if audit == nil {
		return
	}
	if err := audit.Record(c.Request.Context(), rec); err != nil {
		metrics.AuditFailures.Inc()
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write audit log",
			slog.String("module", rec.Module),
			slog.String("action", string(rec.Action)),
			slog.String("resource_id", rec.ResourceID),
			slog.String("error", err.Error()))
	}
}

package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// RegisterAuditRoutes registers the read-only audit trail route.
func RegisterAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List audit log entries
// @Description Most recent first, optionally filtered by module and resource
// @Tags audit
// @Produce json
// @Param module query string false "Module"
// @Param resourceID query string false "Resource ID"
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {array} dto.AuditLogResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list audit logs"
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	logs, err := h.auditService.ListAuditLogs(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list audit logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditLogResponses(logs))
}

package handlers

import (
	"net/http"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/gin-gonic/gin"
)

const auditModuleSettings = "settings"

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
	auditService    portssvc.AuditSvcFacade
}

// RegisterSettingsRoutes registers the system settings routes.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := &settingsHandler{settingsService: settingsService, auditService: auditService}

	settings := rg.Group("/settings")
	{
		settings.GET("/precision", h.getPrecision)
		settings.PUT("/precision", h.updatePrecision)
	}
}

// getPrecision godoc
// @Summary Get decimal precision settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Precision
// @Failure 500 {object} dto.ErrorResponse "Failed to read precision"
// @Security BearerAuth
// @Router /settings/precision [get]
func (h *settingsHandler) getPrecision(c *gin.Context) {
	p, err := h.settingsService.GetPrecision(c.Request.Context())
	if err != nil {
		respondError(c, err, "read precision")
		return
	}
	c.JSON(http.StatusOK, p)
}

// updatePrecision godoc
// @Summary Update decimal precision settings
// @Description Omitted fields keep their current value. Each precision must be between 0 and 8.
// @Tags settings
// @Accept json
// @Produce json
// @Param precision body dto.UpdatePrecisionRequest true "Precisions to change"
// @Success 200 {object} domain.Precision
// @Failure 400 {object} dto.ErrorResponse "Invalid precision"
// @Failure 500 {object} dto.ErrorResponse "Failed to update precision"
// @Security BearerAuth
// @Router /settings/precision [put]
func (h *settingsHandler) updatePrecision(c *gin.Context) {
	var req dto.UpdatePrecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	before, err := h.settingsService.GetPrecision(c.Request.Context())
	if err != nil {
		respondError(c, err, "update precision")
		return
	}

	updated, err := h.settingsService.UpdatePrecision(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "update precision")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditUpdate,
		Module:     auditModuleSettings,
		ResourceID: "precision",
		Before:     before,
		After:      updated,
	})
	c.JSON(http.StatusOK, updated)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the most recent hundred entries for the tenant.
func (h *AuditLogsHandler) List(c *gin.Context) {
	t := tenant.FromContext(c)

	var logs []models.AuditLog
	if err := h.db.
		Where("tenant_id = ?", t.ID).
		Order("id DESC").
		Limit(100).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "No se pudo cargar el registro de actividad.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/httpresp"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type ServiceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("tenant_id = ?", t.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "No se pudieron cargar los servicios.")
		return
	}

	httpresp.Keyed(c, "services", services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	service := models.Service{
		TenantID:    t.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Image:       req.Image,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "No se pudo guardar el servicio.")
		return
	}

	h.dispatch(c, t, "service_created", service.ID)

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	service, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	service.Title = strings.TrimSpace(req.Title)
	service.Description = req.Description
	service.Image = req.Image

	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "No se pudo guardar el servicio.")
		return
	}

	h.dispatch(c, t, "service_updated", service.ID)

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	service, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	if err := h.db.Delete(service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "No se pudo eliminar el servicio.")
		return
	}

	h.dispatch(c, t, "service_deleted", service.ID)

	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

func (h *ServiceHandler) pathTenant(c *gin.Context) (*models.Tenant, bool) {
	t := tenant.FromContext(c)

	id, err := strconv.ParseUint(c.Param("tenantRef"), 10, 32)
	if err != nil || uint(id) != t.ID {
		httperr.Forbidden(c, "tenant_mismatch", "No puedes administrar otra clínica.")
		return nil, false
	}
	return t, true
}

func (h *ServiceHandler) find(c *gin.Context, tenantID uint) (*models.Service, bool) {
	var service models.Service
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_service", "No se pudo cargar el servicio.")
		return nil, false
	}
	return &service, true
}

func (h *ServiceHandler) dispatch(c *gin.Context, t *models.Tenant, action string, entityID uint) {
	h.audit.Dispatch(audit.Event{
		TenantID: t.ID,
		StaffID:  staffIDPtr(c),
		Action:   action,
		Entity:   "service",
		EntityID: &entityID,
	})
}

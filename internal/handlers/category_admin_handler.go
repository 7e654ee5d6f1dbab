package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/httpresp"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

type CategoryAdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCategoryAdminHandler(db *gorm.DB, audit *audit.Dispatcher) *CategoryAdminHandler {
	return &CategoryAdminHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// --------- Handlers ---------

func (h *CategoryAdminHandler) List(c *gin.Context) {
	t := tenant.FromContext(c)

	var categories []models.Category
	if err := h.db.
		Where("tenant_id = ?", t.ID).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "No se pudieron cargar las categorías.")
		return
	}

	httpresp.Keyed(c, "categories", categories)
}

func (h *CategoryAdminHandler) Create(c *gin.Context) {
	t := tenant.FromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	category := models.Category{
		TenantID:  t.ID,
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
		IsActive:  true,
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "No se pudo guardar la categoría.")
		return
	}

	h.dispatch(c, "category_created", category.ID)

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryAdminHandler) Update(c *gin.Context) {
	t := tenant.FromContext(c)

	category, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.SortOrder = req.SortOrder

	if err := h.db.Save(category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "No se pudo guardar la categoría.")
		return
	}

	h.dispatch(c, "category_updated", category.ID)

	c.JSON(http.StatusOK, category)
}

// Activation is a dedicated endpoint rather than a field on the
// generic update, so the action shows up unambiguously in audit logs.
func (h *CategoryAdminHandler) Activate(c *gin.Context) {
	h.setActive(c, true, "category_activated")
}

func (h *CategoryAdminHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false, "category_deactivated")
}

func (h *CategoryAdminHandler) setActive(c *gin.Context, active bool, action string) {
	t := tenant.FromContext(c)

	category, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	category.IsActive = active
	if err := h.db.Save(category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "No se pudo cambiar el estado de la categoría.")
		return
	}

	h.dispatch(c, action, category.ID)

	c.JSON(http.StatusOK, category)
}

func (h *CategoryAdminHandler) find(c *gin.Context, tenantID uint) (*models.Category, bool) {
	var category models.Category
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&category).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "category_not_found", "Categoría no encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_category", "No se pudo cargar la categoría.")
		return nil, false
	}
	return &category, true
}

func (h *CategoryAdminHandler) dispatch(c *gin.Context, action string, entityID uint) {
	h.audit.Dispatch(audit.Event{
		TenantID: tenant.FromContext(c).ID,
		StaffID:  staffIDPtr(c),
		Action:   action,
		Entity:   "category",
		EntityID: &entityID,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

type TenantHandler struct {
	db    *gorm.DB
	cache *tenant.Cache
}

func NewTenantHandler(db *gorm.DB, cache *tenant.Cache) *TenantHandler {
	return &TenantHandler{db: db, cache: cache}
}

// --------- Requests ---------

type UpdateTenantProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	LogoURL        *string `json:"logoUrl,omitempty"`
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	SecondaryColor *string `json:"secondaryColor,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	Address        *string `json:"address,omitempty"`
	Schedule       *string `json:"schedule,omitempty"`
}

// --------- Handlers ---------

// GetProfile is the branding endpoint hit on every storefront
// navigation; the tenant itself comes from the cache-backed
// middleware, only the marketing services are fetched here.
func (h *TenantHandler) GetProfile(c *gin.Context) {
	t := tenant.FromContext(c)

	var services []models.Service
	if err := h.db.
		Where("tenant_id = ?", t.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_load_profile", "No se pudo cargar el perfil de la clínica.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant": gin.H{
			"id":             t.ID,
			"tenantId":       t.Slug,
			"name":           t.Name,
			"logoUrl":        t.LogoURL,
			"primaryColor":   t.PrimaryColor,
			"secondaryColor": t.SecondaryColor,
			"phone":          t.Phone,
			"email":          t.Email,
			"address":        t.Address,
			"schedule":       t.Schedule,
			"services":       services,
		},
	})
}

// UpdateProfile is slug-addressed while staff and services are
// id-addressed; the asymmetry is inherited from the admin console and
// kept until the backend routing is unified.
func (h *TenantHandler) UpdateProfile(c *gin.Context) {
	t := tenant.FromContext(c)

	if c.Param("tenantRef") != t.Slug {
		httperr.Forbidden(c, "tenant_mismatch", "No puedes modificar otra clínica.")
		return
	}

	var req UpdateTenantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	var record models.Tenant
	if err := h.db.First(&record, t.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_tenant", "No se pudo cargar la clínica.")
		return
	}

	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.LogoURL != nil {
		record.LogoURL = *req.LogoURL
	}
	if req.PrimaryColor != nil {
		record.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		record.SecondaryColor = *req.SecondaryColor
	}
	if req.Phone != nil {
		record.Phone = *req.Phone
	}
	if req.Email != nil {
		record.Email = *req.Email
	}
	if req.Address != nil {
		record.Address = *req.Address
	}
	if req.Schedule != nil {
		record.Schedule = *req.Schedule
	}

	if err := h.db.Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "No se pudo guardar el perfil.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), t.Slug)

	c.JSON(http.StatusOK, gin.H{"tenant": record})
}

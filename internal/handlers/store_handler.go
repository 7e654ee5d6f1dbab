package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/httpresp"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

// StoreHandler serves the public storefront catalog. No session is
// required to browse; only active categories and available products
// ever leave this handler.
type StoreHandler struct {
	db *gorm.DB
}

func NewStoreHandler(db *gorm.DB) *StoreHandler {
	return &StoreHandler{db: db}
}

func (h *StoreHandler) ListCategories(c *gin.Context) {
	t := tenant.FromContext(c)

	var categories []models.Category
	if err := h.db.
		Where("tenant_id = ? AND is_active = ?", t.ID, true).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "No se pudieron cargar las categorías.")
		return
	}

	httpresp.Keyed(c, "categories", categories)
}

func (h *StoreHandler) ListProducts(c *gin.Context) {
	t := tenant.FromContext(c)

	q := h.db.Preload("Category").
		Where("tenant_id = ? AND is_available = ?", t.ID, true)

	if category := strings.TrimSpace(c.Query("category")); category != "" && category != "all" {
		q = q.Where("category_id = ?", category)
	}

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "No se pudieron cargar los productos.")
		return
	}

	httpresp.Keyed(c, "products", products)
}

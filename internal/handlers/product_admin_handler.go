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
	"github.com/vetlinkpe/vetlink-api/internal/storage"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

type ProductAdminHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader storage.Uploader
}

func NewProductAdminHandler(db *gorm.DB, audit *audit.Dispatcher, uploader storage.Uploader) *ProductAdminHandler {
	return &ProductAdminHandler{db: db, audit: audit, uploader: uploader}
}

// --------- Handlers ---------

func (h *ProductAdminHandler) List(c *gin.Context) {
	t := tenant.FromContext(c)

	status := strings.TrimSpace(c.Query("status")) // "active", "inactive" or empty
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	q := h.db.Preload("Category").Where("tenant_id = ?", t.ID)

	switch status {
	case "active":
		q = q.Where("is_available = ?", true)
	case "inactive":
		q = q.Where("is_available = ?", false)
	}

	if search != "" {
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

// Create consumes multipart form data: the image travels with the
// catalog fields, gets normalized to WebP and lands in object storage.
func (h *ProductAdminHandler) Create(c *gin.Context) {
	t := tenant.FromContext(c)

	product := models.Product{TenantID: t.ID, IsAvailable: true}
	if !h.bindForm(c, t.ID, &product) {
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "image_required", "La imagen es obligatoria al crear un producto.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadProductImage(c.Request.Context(), t.Slug, file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "El archivo de imagen no es válido.")
			return
		}
		httperr.Internal(c, "failed_to_upload_image", "No se pudo subir la imagen.")
		return
	}
	product.Image = url

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "No se pudo guardar el producto.")
		return
	}

	h.dispatch(c, "product_created", product.ID)

	c.JSON(http.StatusCreated, product)
}

func (h *ProductAdminHandler) Update(c *gin.Context) {
	t := tenant.FromContext(c)

	product, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	if !h.bindForm(c, t.ID, product) {
		return
	}

	// The image is optional on update; keep the current one when no
	// new file was attached.
	if file, _, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()

		url, err := h.uploader.UploadProductImage(c.Request.Context(), t.Slug, file)
		if err != nil {
			if httperr.IsBusiness(err, "invalid_image") {
				httperr.BadRequest(c, "invalid_image", "El archivo de imagen no es válido.")
				return
			}
			httperr.Internal(c, "failed_to_upload_image", "No se pudo subir la imagen.")
			return
		}
		product.Image = url
	}

	if err := h.db.Save(product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "No se pudo guardar el producto.")
		return
	}

	h.dispatch(c, "product_updated", product.ID)

	c.JSON(http.StatusOK, product)
}

func (h *ProductAdminHandler) Activate(c *gin.Context) {
	h.setAvailable(c, true, "product_activated")
}

func (h *ProductAdminHandler) Deactivate(c *gin.Context) {
	h.setAvailable(c, false, "product_deactivated")
}

// --------- Helpers ---------

func (h *ProductAdminHandler) bindForm(c *gin.Context, tenantID uint, product *models.Product) bool {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		httperr.BadRequest(c, "invalid_request", "El nombre del producto es obligatorio.")
		return false
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		httperr.BadRequest(c, "invalid_price", "El precio no es válido.")
		return false
	}

	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil || stock < 0 {
		httperr.BadRequest(c, "invalid_stock", "El stock no es válido.")
		return false
	}

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_category", "La categoría no es válida.")
		return false
	}

	var count int64
	h.db.Model(&models.Category{}).
		Where("id = ? AND tenant_id = ?", categoryID, tenantID).
		Count(&count)
	if count == 0 {
		httperr.BadRequest(c, "category_not_found", "La categoría seleccionada no existe.")
		return false
	}

	product.Name = name
	product.Description = strings.TrimSpace(c.PostForm("description"))
	product.Price = price
	product.Stock = stock
	product.CategoryID = uint(categoryID)
	return true
}

func (h *ProductAdminHandler) setAvailable(c *gin.Context, available bool, action string) {
	t := tenant.FromContext(c)

	product, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	product.IsAvailable = available
	if err := h.db.Save(product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "No se pudo cambiar el estado del producto.")
		return
	}

	h.dispatch(c, action, product.ID)

	c.JSON(http.StatusOK, product)
}

func (h *ProductAdminHandler) find(c *gin.Context, tenantID uint) (*models.Product, bool) {
	var product models.Product
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Producto no encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_product", "No se pudo cargar el producto.")
		return nil, false
	}
	return &product, true
}

func (h *ProductAdminHandler) dispatch(c *gin.Context, action string, entityID uint) {
	h.audit.Dispatch(audit.Event{
		TenantID: tenant.FromContext(c).ID,
		StaffID:  staffIDPtr(c),
		Action:   action,
		Entity:   "product",
		EntityID: &entityID,
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/cart"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

// CartHandler exposes the per-client server-side cart. Every route is
// behind the client guard, so a cart is always keyed by the
// authenticated client and the resolved tenant.
type CartHandler struct {
	db    *gorm.DB
	carts *cart.Store
}

func NewCartHandler(db *gorm.DB, carts *cart.Store) *CartHandler {
	return &CartHandler{db: db, carts: carts}
}

// --------- Requests ---------

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// --------- Handlers ---------

func (h *CartHandler) Get(c *gin.Context) {
	t := tenant.FromContext(c)
	c.JSON(http.StatusOK, h.carts.Get(t.ID, clientID(c)))
}

func (h *CartHandler) Add(c *gin.Context) {
	t := tenant.FromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.db.
		Where("id = ? AND tenant_id = ?", req.ProductID, t.ID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Producto no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "No se pudo cargar el producto.")
		return
	}

	if !product.IsAvailable {
		httperr.BadRequest(c, "product_unavailable", "Este producto ya no está disponible.")
		return
	}
	if product.Stock <= 0 {
		httperr.BadRequest(c, "product_out_of_stock", "Este producto está agotado.")
		return
	}

	h.carts.Add(t.ID, clientID(c), cart.ProductSnapshot{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.Image,
		Stock: product.Stock,
	}, req.Quantity)

	c.JSON(http.StatusOK, h.carts.Get(t.ID, clientID(c)))
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	t := tenant.FromContext(c)

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "El identificador del producto no es válido.")
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	h.carts.SetQuantity(t.ID, clientID(c), uint(productID), req.Quantity)

	c.JSON(http.StatusOK, h.carts.Get(t.ID, clientID(c)))
}

func (h *CartHandler) Remove(c *gin.Context) {
	t := tenant.FromContext(c)

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "El identificador del producto no es válido.")
		return
	}

	h.carts.Remove(t.ID, clientID(c), uint(productID))

	c.JSON(http.StatusOK, h.carts.Get(t.ID, clientID(c)))
}

func (h *CartHandler) Clear(c *gin.Context) {
	t := tenant.FromContext(c)
	h.carts.Clear(t.ID, clientID(c))
	c.Status(http.StatusNoContent)
}

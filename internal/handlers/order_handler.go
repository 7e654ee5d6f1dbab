package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/cart"
	domain "github.com/vetlinkpe/vetlink-api/internal/domain/order"
	"github.com/vetlinkpe/vetlink-api/internal/dto"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
	orderuc "github.com/vetlinkpe/vetlink-api/internal/usecase/order"
)

type OrderHandler struct {
	repo  domain.Repository
	carts *cart.Store

	placeOrder   *orderuc.PlaceOrder
	markReady    *orderuc.MarkOrderReady
	markPickedUp *orderuc.MarkOrderPickedUp
	cancelOrder  *orderuc.CancelOrder
	expireOrders *orderuc.ExpireOverdueOrders
}

func NewOrderHandler(
	repo domain.Repository,
	carts *cart.Store,
	placeOrder *orderuc.PlaceOrder,
	markReady *orderuc.MarkOrderReady,
	markPickedUp *orderuc.MarkOrderPickedUp,
	cancelOrder *orderuc.CancelOrder,
	expireOrders *orderuc.ExpireOverdueOrders,
) *OrderHandler {
	return &OrderHandler{
		repo:         repo,
		carts:        carts,
		placeOrder:   placeOrder,
		markReady:    markReady,
		markPickedUp: markPickedUp,
		cancelOrder:  cancelOrder,
		expireOrders: expireOrders,
	}
}

// --------- Requests ---------

type PlaceOrderItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type PlaceOrderRequest struct {
	Items      []PlaceOrderItemRequest `json:"items" binding:"required"`
	PickupDate string                  `json:"pickupDate" binding:"required"`
}

// --------- Client handlers ---------

// Place creates the order from the request payload, then clears the
// client's cart. Payment happens at the counter on pickup.
func (h *OrderHandler) Place(c *gin.Context) {
	t := tenant.FromContext(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	items := make([]orderuc.PlaceOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orderuc.PlaceOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	o, err := h.placeOrder.Execute(c.Request.Context(), orderuc.PlaceOrderInput{
		TenantID:   t.ID,
		ClientID:   clientID(c),
		Items:      items,
		PickupDate: req.PickupDate,
		Timezone:   t.Timezone,
	})
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	h.carts.Clear(t.ID, clientID(c))

	c.JSON(http.StatusCreated, gin.H{
		"orderId": o.Number,
		"total":   o.TotalAmount,
	})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	t := tenant.FromContext(c)

	orders, err := h.repo.ListOrdersForClient(c.Request.Context(), t.ID, clientID(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_orders", "No se pudieron cargar tus pedidos.")
		return
	}

	out := make([]dto.OrderListDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.OrderToListDTO(o))
	}

	c.JSON(http.StatusOK, gin.H{"orders": out})
}

// --------- Staff handlers ---------

// AdminList sweeps overdue orders before listing, so staff never see a
// pending order whose pickup date already passed.
func (h *OrderHandler) AdminList(c *gin.Context) {
	t := tenant.FromContext(c)

	if _, err := h.expireOrders.Execute(c.Request.Context(), t.ID, t.Timezone); err != nil {
		httperr.Internal(c, "failed_to_expire_orders", "No se pudieron actualizar los pedidos vencidos.")
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	if status == "all" {
		status = ""
	}

	orders, err := h.repo.ListOrdersForTenant(c.Request.Context(), t.ID, status)
	if err != nil {
		httperr.Internal(c, "failed_to_list_orders", "No se pudieron cargar los pedidos.")
		return
	}

	out := make([]dto.OrderListDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.OrderToListDTO(o))
	}

	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) MarkReady(c *gin.Context) {
	t := tenant.FromContext(c)

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	o, err := h.markReady.Execute(c.Request.Context(), t.ID, id, staffID(c))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderToListDTO(*o))
}

func (h *OrderHandler) MarkPickedUp(c *gin.Context) {
	t := tenant.FromContext(c)

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	o, err := h.markPickedUp.Execute(c.Request.Context(), t.ID, id, staffID(c), t.Timezone)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderToListDTO(*o))
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	t := tenant.FromContext(c)

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	o, err := h.cancelOrder.Execute(c.Request.Context(), t.ID, id, staffID(c), t.Timezone)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderToListDTO(*o))
}

// --------- Helpers ---------

func (h *OrderHandler) orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_order_id", "El identificador del pedido no es válido.")
		return 0, false
	}
	return uint(id), true
}

var orderErrorMessages = map[string]string{
	"empty_cart":           "El carrito está vacío.",
	"invalid_pickup_date":  "La fecha de recojo no es válida.",
	"pickup_too_soon":      "El recojo debe ser a partir de mañana.",
	"invalid_quantity":     "La cantidad indicada no es válida.",
	"product_not_found":    "Uno de los productos ya no existe.",
	"product_unavailable":  "Uno de los productos ya no está disponible.",
	"product_out_of_stock": "Uno de los productos está agotado.",
	"insufficient_stock":   "El stock cambió mientras confirmabas el pedido.",
	"invalid_state":        "El pedido no admite este cambio de estado.",
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg, ok := orderErrorMessages[be.Code]
		if !ok {
			msg = "No se pudo procesar el pedido."
		}
		status := http.StatusBadRequest
		if be.Code == "invalid_state" {
			status = http.StatusConflict
		}
		httperr.Write(c, status, be.Code, msg)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "order_not_found", "Pedido no encontrado.")
		return
	}

	httperr.Internal(c, "failed_to_process_order", "No se pudo procesar el pedido.")
}

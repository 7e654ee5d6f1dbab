package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vetlinkpe/vetlink-api/internal/cart"
	"github.com/vetlinkpe/vetlink-api/internal/middleware"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
)

// The add path needs the catalog, but get/update/remove/clear work
// purely against the in-memory store, so the router runs without a
// database here.
func cartRouter(store *cart.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(tenant.ContextTenant, &models.Tenant{ID: 1, Slug: "chavez"})
		c.Set(middleware.ContextClientID, uint(7))
		c.Next()
	})

	h := NewCartHandler(nil, store)
	r.GET("/api/cart", h.Get)
	r.PUT("/api/cart/items/:productId", h.SetQuantity)
	r.DELETE("/api/cart/items/:productId", h.Remove)
	r.DELETE("/api/cart", h.Clear)

	return r
}

func doCart(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSummary(t *testing.T, w *httptest.ResponseRecorder) cart.Summary {
	t.Helper()
	var s cart.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	return s
}

func TestCartGetEmpty(t *testing.T) {
	r := cartRouter(cart.NewStore())

	w := doCart(r, http.MethodGet, "/api/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	s := decodeSummary(t, w)
	if s.TotalItems != 0 || s.TotalAmount != 0 {
		t.Fatalf("empty cart has totals: %+v", s)
	}
}

func TestCartSetQuantityClampsToStock(t *testing.T) {
	store := cart.NewStore()
	store.Add(1, 7, cart.ProductSnapshot{ID: 10, Name: "Shampoo", Price: 25, Stock: 3}, 1)

	r := cartRouter(store)

	w := doCart(r, http.MethodPut, "/api/cart/items/10", `{"quantity": 99}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	s := decodeSummary(t, w)
	if s.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3 (clamped to stock)", s.TotalItems)
	}
	if s.TotalAmount != 75 {
		t.Fatalf("TotalAmount = %v, want 75", s.TotalAmount)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	store := cart.NewStore()
	store.Add(1, 7, cart.ProductSnapshot{ID: 10, Name: "Shampoo", Price: 25, Stock: 3}, 2)

	r := cartRouter(store)

	w := doCart(r, http.MethodPut, "/api/cart/items/10", `{"quantity": 0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if s := decodeSummary(t, w); len(s.Items) != 0 {
		t.Fatalf("line not removed: %+v", s.Items)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	store := cart.NewStore()
	store.Add(1, 7, cart.ProductSnapshot{ID: 10, Name: "Shampoo", Price: 25, Stock: 3}, 1)
	store.Add(1, 7, cart.ProductSnapshot{ID: 11, Name: "Correa", Price: 40, Stock: 5}, 2)

	r := cartRouter(store)

	w := doCart(r, http.MethodDelete, "/api/cart/items/10", "")
	if s := decodeSummary(t, w); len(s.Items) != 1 || s.Items[0].Product.ID != 11 {
		t.Fatalf("remove left wrong lines: %+v", s.Items)
	}

	if w := doCart(r, http.MethodDelete, "/api/cart", ""); w.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d, want 204", w.Code)
	}

	if s := store.Get(1, 7); len(s.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", s.Items)
	}
}

func TestCartInvalidProductID(t *testing.T) {
	r := cartRouter(cart.NewStore())

	w := doCart(r, http.MethodPut, "/api/cart/items/abc", `{"quantity": 1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

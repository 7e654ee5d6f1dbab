package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/models"
)

type fakeSource struct {
	tenant *models.Tenant
	err    error
}

func (f fakeSource) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	return f.tenant, f.err
}

func middlewareRouter(source ProfileSource) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(NewResolver("chavez"), source))
	r.GET("/api/store/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"slug": FromContext(c).Slug})
	})
	return r
}

func request(r *gin.Engine, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/store/products", nil)
	req.Host = host
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		ErrorCode string `json:"error_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.ErrorCode
}

func TestMiddlewareSetsResolvedTenant(t *testing.T) {
	r := middlewareRouter(fakeSource{tenant: &models.Tenant{ID: 1, Slug: "sanmarcos"}})

	w := request(r, "sanmarcos.vetlink.pe")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestMiddlewareUnknownTenantIs404(t *testing.T) {
	r := middlewareRouter(fakeSource{err: gorm.ErrRecordNotFound})

	w := request(r, "desconocida.vetlink.pe")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if code := errorCode(t, w); code != "tenant_not_found" {
		t.Errorf("error_code = %q, want tenant_not_found", code)
	}
}

// A database outage must not read as "clinic does not exist".
func TestMiddlewareLookupFailureIs500(t *testing.T) {
	r := middlewareRouter(fakeSource{err: errors.New("connection refused")})

	w := request(r, "sanmarcos.vetlink.pe")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if code := errorCode(t, w); code != "tenant_lookup_failed" {
		t.Errorf("error_code = %q, want tenant_lookup_failed", code)
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vetlinkpe/vetlink-api/internal/config"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
	"github.com/vetlinkpe/vetlink-api/internal/token"
)

const testSecret = "test-secret"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()

	// Simulate the tenant middleware: every request belongs to tenant 1.
	r.Use(func(c *gin.Context) {
		c.Set(tenant.ContextTenant, &models.Tenant{ID: 1, Slug: "chavez"})
		c.Next()
	})

	admin := r.Group("/api/admin")
	admin.Use(StaffAuthMiddleware(cfg, nil))
	admin.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff_id": c.MustGet(ContextStaffID)})
	})

	staffOnly := admin.Group("/")
	staffOnly.Use(RequireAdmin())
	staffOnly.DELETE("/staff/1", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	store := r.Group("/api")
	store.Use(ClientAuthMiddleware(cfg, nil))
	store.POST("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"client_id": c.MustGet(ContextClientID)})
	})

	return r
}

func do(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStaffGuardRejectsAnonymous(t *testing.T) {
	r := testRouter(t)

	w := do(r, http.MethodGet, "/api/admin/categories", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["login"] != "/admin/login" {
		t.Errorf("login = %q, want /admin/login", body["login"])
	}
	if body["from"] != "/api/admin/categories" {
		t.Errorf("from = %q, want the attempted path", body["from"])
	}
}

func TestStaffGuardAcceptsStaffToken(t *testing.T) {
	r := testRouter(t)

	tok, err := token.Issue(testSecret, token.AudienceStaff, 5, 1, models.RoleDoctor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w := do(r, http.MethodGet, "/api/admin/categories", tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

// The two guards are independent: a client session never opens the
// admin tree, a staff session never opens checkout.
func TestGuardsAreIndependent(t *testing.T) {
	r := testRouter(t)

	clientTok, err := token.Issue(testSecret, token.AudienceClient, 9, 1, "client")
	if err != nil {
		t.Fatalf("Issue client: %v", err)
	}
	staffTok, err := token.Issue(testSecret, token.AudienceStaff, 5, 1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue staff: %v", err)
	}

	if w := do(r, http.MethodGet, "/api/admin/categories", clientTok); w.Code != http.StatusUnauthorized {
		t.Errorf("client token on staff route: expected 401, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/orders", staffTok); w.Code != http.StatusUnauthorized {
		t.Errorf("staff token on client route: expected 401, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/orders", clientTok); w.Code != http.StatusOK {
		t.Errorf("client token on client route: expected 200, got %d", w.Code)
	}
}

func TestGuardRejectsForeignTenantToken(t *testing.T) {
	r := testRouter(t)

	// Valid signature, but minted for tenant 2 while the request host
	// resolves to tenant 1.
	tok, err := token.Issue(testSecret, token.AudienceStaff, 5, 2, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if w := do(r, http.MethodGet, "/api/admin/categories", tok); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign tenant token: expected 401, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	r := testRouter(t)

	doctorTok, err := token.Issue(testSecret, token.AudienceStaff, 5, 1, models.RoleDoctor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	adminTok, err := token.Issue(testSecret, token.AudienceStaff, 6, 1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if w := do(r, http.MethodDelete, "/api/admin/staff/1", doctorTok); w.Code != http.StatusForbidden {
		t.Errorf("doctor on admin-only route: expected 403, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/admin/staff/1", adminTok); w.Code != http.StatusNoContent {
		t.Errorf("admin on admin-only route: expected 204, got %d", w.Code)
	}
}

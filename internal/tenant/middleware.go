package tenant

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
)

const ContextTenant = "tenant"

// ProfileSource is the slice of Cache the middleware needs.
type ProfileSource interface {
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
}

// Middleware resolves the tenant from the Host header and loads its
// profile through the cache. A host that resolves to an unknown slug
// is a 404 on every tenant-scoped route; a failed lookup is not the
// same as a missing clinic and stays a 500.
func Middleware(resolver *Resolver, source ProfileSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := resolver.Slug(c.Request.Host)

		t, err := source.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.NotFound(c, "tenant_not_found", "Clínica no encontrada para este dominio.")
			} else {
				httperr.Internal(c, "tenant_lookup_failed", "No se pudo identificar la clínica.")
			}
			c.Abort()
			return
		}

		c.Set(ContextTenant, t)
		c.Next()
	}
}

// FromContext returns the tenant resolved for this request. Handlers
// behind Middleware may assume it is present.
func FromContext(c *gin.Context) *models.Tenant {
	v, _ := c.Get(ContextTenant)
	t, _ := v.(*models.Tenant)
	return t
}

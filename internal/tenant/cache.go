package tenant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/models"
)

const profileTTL = 5 * time.Minute

// Cache is a read-through cache for tenant profiles. The profile is
// requested on every storefront navigation, so it sits in Redis with a
// short TTL and is invalidated when the admin saves the profile.
type Cache struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCache(db *gorm.DB, rdb *redis.Client) *Cache {
	return &Cache{db: db, rdb: rdb}
}

func profileKey(slug string) string {
	return fmt.Sprintf("tenant:profile:%s", slug)
}

func (c *Cache) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, profileKey(slug)).Result()
		if err == nil {
			var t models.Tenant
			if jsonErr := json.Unmarshal([]byte(raw), &t); jsonErr == nil {
				return &t, nil
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Str("slug", slug).Msg("tenant cache read failed")
		}
	}

	var t models.Tenant
	if err := c.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if b, err := json.Marshal(&t); err == nil {
			if err := c.rdb.Set(ctx, profileKey(slug), b, profileTTL).Err(); err != nil {
				log.Warn().Err(err).Str("slug", slug).Msg("tenant cache write failed")
			}
		}
	}

	return &t, nil
}

// Invalidate drops the cached profile after a profile update so the
// next navigation sees the new branding.
func (c *Cache) Invalidate(ctx context.Context, slug string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, profileKey(slug)).Err(); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("tenant cache invalidation failed")
	}
}

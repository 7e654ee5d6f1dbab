package token

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Denylist invalidates tokens server-side on logout. Entries live in
// Redis only until the token's natural expiry; a missing Redis client
// degrades to stateless JWTs.
type Denylist struct {
	rdb *redis.Client
}

func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{rdb: rdb}
}

func denyKey(jti string) string {
	return fmt.Sprintf("auth:denylist:%s", jti)
}

func (d *Denylist) Revoke(ctx context.Context, claims *Claims) error {
	if d.rdb == nil || claims.JTI == "" {
		return nil
	}

	ttl := time.Until(claims.Expiry)
	if ttl <= 0 {
		return nil
	}

	return d.rdb.Set(ctx, denyKey(claims.JTI), "1", ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) bool {
	if d.rdb == nil || jti == "" {
		return false
	}

	_, err := d.rdb.Get(ctx, denyKey(jti)).Result()
	return err == nil
}

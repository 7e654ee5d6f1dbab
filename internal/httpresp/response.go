package httpresp

import "github.com/gin-gonic/gin"

// Keyed wraps a collection under a named key ({"categories": [...]}),
// the envelope shape the storefront and admin console consume. A nil
// slice serializes as an empty array, never null.
func Keyed[T any](c *gin.Context, key string, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(200, gin.H{key: data})
}

// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// GetArtisanID gets the authenticated artisan ID from context.
func GetArtisanID(c *gin.Context) (string, bool) {
	artisanID, exists := c.Get("artisan_id")
	if !exists {
		return "", false
	}

	id, ok := artisanID.(string)
	return id, ok
}

// MustGetArtisanID gets the artisan ID from context or panics. Only for
// handlers mounted behind Auth().
func MustGetArtisanID(c *gin.Context) string {
	id, exists := GetArtisanID(c)
	if !exists {
		panic("artisan_id not found in context")
	}
	return id
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("artisan_id")
	return exists
}

package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware marks slow-changing public responses (the schools
// directory) as cacheable for the given number of seconds.
func CacheControlMiddleware(seconds string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age="+seconds)
		c.Next()
	}
}

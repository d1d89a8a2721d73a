package api

import "github.com/gin-gonic/gin"

// respondError sends a structured JSON error response tagged with the request id
func respondError(c *gin.Context, code int, message string) {
	body := gin.H{
		"message": message,
		"status":  code,
	}
	if id := c.GetString("request_id"); id != "" {
		body["request_id"] = id
	}
	c.JSON(code, gin.H{"error": body})
	c.Abort()
}

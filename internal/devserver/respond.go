package devserver

import "github.com/gin-gonic/gin"

// respondData writes the standard response envelope. Every success payload
// is wrapped as {status, data} so the web client's response helpers can
// unwrap uniformly.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": status,
		"data":   data,
	})
}

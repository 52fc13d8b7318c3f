package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the standard success envelope.
func JSON(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{"data": data, "message": message})
}

func JSONError(c *gin.Context, status int, data any, format string, args ...any) {
	c.AbortWithStatusJSON(status, gin.H{"data": data, "message": fmt.Sprintf(format, args...)})
}

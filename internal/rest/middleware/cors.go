package middleware

import (
	"net/http"
	"strings"

	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/gin-gonic/gin"
)

// exposedHeaders are readable by browser clients downloading a PDF
var exposedHeaders = strings.Join([]string{
	"Content-Disposition",
	types.HeaderPDFURL,
	types.HeaderRequestID,
}, ", ")

// CORSMiddleware handles CORS headers
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
	c.Writer.Header().Set("Access-Control-Expose-Headers", exposedHeaders)
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

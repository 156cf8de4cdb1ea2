package middleware

import "github.com/gin-gonic/gin"

// Headers stamps the server identification headers on every response.
// They are set before the handler runs so aborted and error responses carry them too.
func Headers(server, poweredBy string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Powered-By", poweredBy)
		c.Header("Server", server)
		c.Next()
	}
}

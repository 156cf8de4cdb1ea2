package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"simple-crud-api/pkg/logger"
)

// Logger logs every request, plus the JSON body of POST and PUT requests.
// A missing or unparsable body is logged as "no body" and the request proceeds.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		reqLog := logger.WithContext(c.Request.Context(), log)

		reqLog.Info("request", zap.String("method", method), zap.String("path", path))

		if method == http.MethodPost || method == http.MethodPut {
			logBody(c, reqLog)
		}

		defer func() {
			reqLog.Info("response",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", c.ClientIP()),
			)
		}()

		c.Next()
	}
}

func logBody(c *gin.Context, log *zap.Logger) {
	if c.Request.Body == nil {
		log.Debug("request body", zap.String("body", "no body"))
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		log.Debug("request body", zap.String("body", "no body"), zap.Error(err))
		return
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		log.Debug("request body", zap.String("body", "no body"))
		return
	}
	log.Debug("request body", zap.Any("body", body))
}

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"simple-crud-api/pkg/i18n"
	"simple-crud-api/pkg/logger"
	"simple-crud-api/pkg/metrics"
)

func setupTest(t *testing.T) (*gin.Engine, *i18n.Translator) {
	gin.SetMode(gin.TestMode)
	tr, err := i18n.New("en")
	require.NoError(t, err)
	return gin.New(), tr
}

func TestRecovery(t *testing.T) {
	r, tr := setupTest(t)
	core, logs := observer.New(zapcore.ErrorLevel)
	r.Use(Recovery(zap.New(core), tr))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error","message":"please try again later"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRequestID(t *testing.T) {
	t.Run("Generated", func(t *testing.T) {
		r, _ := setupTest(t)
		var seen string
		r.Use(RequestID())
		r.GET("/", func(c *gin.Context) {
			seen = logger.GetRequestID(c.Request.Context())
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("Propagated", func(t *testing.T) {
		r, _ := setupTest(t)
		r.Use(RequestID())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	})
}

func TestHeaders_OnEveryResponse(t *testing.T) {
	r, _ := setupTest(t)
	r.Use(Headers("Simple Gin API", "Gin"))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/ok", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, "Gin", w.Header().Get("X-Powered-By"), path)
		assert.Equal(t, "Simple Gin API", w.Header().Get("Server"), path)
	}
}

func TestLogger(t *testing.T) {
	t.Run("Logs body and restores it", func(t *testing.T) {
		r, _ := setupTest(t)
		core, logs := observer.New(zapcore.DebugLevel)
		r.Use(Logger(zap.New(core)))

		var handlerBody string
		r.POST("/users", func(c *gin.Context) {
			b, _ := io.ReadAll(c.Request.Body)
			handlerBody = string(b)
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"name":"Alice"}`)))

		assert.Equal(t, `{"name":"Alice"}`, handlerBody)
		bodyLogs := logs.FilterMessage("request body").All()
		require.Len(t, bodyLogs, 1)
		assert.Equal(t, map[string]any{"name": "Alice"}, bodyLogs[0].ContextMap()["body"])

		responses := logs.FilterMessage("response").All()
		require.Len(t, responses, 1)
		assert.EqualValues(t, http.StatusCreated, responses[0].ContextMap()["status"])
	})

	t.Run("Invalid JSON is logged as no body", func(t *testing.T) {
		r, _ := setupTest(t)
		core, logs := observer.New(zapcore.DebugLevel)
		r.Use(Logger(zap.New(core)))
		r.PUT("/users/1", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewBufferString("not json")))

		assert.Equal(t, http.StatusOK, w.Code)
		bodyLogs := logs.FilterMessage("request body").All()
		require.Len(t, bodyLogs, 1)
		assert.Equal(t, "no body", bodyLogs[0].ContextMap()["body"])
	})

	t.Run("GET does not log a body", func(t *testing.T) {
		r, _ := setupTest(t)
		core, logs := observer.New(zapcore.DebugLevel)
		r.Use(Logger(zap.New(core)))
		r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, 0, logs.FilterMessage("request body").Len())
		assert.Equal(t, 1, logs.FilterMessage("request").Len())
	})
}

func TestMetrics(t *testing.T) {
	r, _ := setupTest(t)
	m := metrics.New(metrics.Config{Namespace: "test"})
	r.Use(Metrics(m))
	r.GET("/users/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/users/1", "/users/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",route="/users/:id",status="200"} 2`)
	assert.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestMetrics_PanickingHandler(t *testing.T) {
	t.Run("Recovery inside Metrics records the 500", func(t *testing.T) {
		r, tr := setupTest(t)
		m := metrics.New(metrics.Config{Namespace: "test"})
		r.Use(Metrics(m))
		r.Use(Recovery(zaptest.NewLogger(t), tr))
		r.GET("/panic", func(c *gin.Context) { panic("x") })

		for range 3 {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		}

		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Contains(t, w.Body.String(), "test_http_requests_in_flight 0\n")
		assert.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",route="/panic",status="500"} 3`)
	})

	t.Run("Recovery outside Metrics still releases the gauge", func(t *testing.T) {
		r, tr := setupTest(t)
		m := metrics.New(metrics.Config{Namespace: "test"})
		r.Use(Recovery(zaptest.NewLogger(t), tr))
		r.Use(Metrics(m))
		r.GET("/panic", func(c *gin.Context) { panic("x") })

		for range 3 {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		}

		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Contains(t, w.Body.String(), "test_http_requests_in_flight 0\n")
		assert.Contains(t, w.Body.String(), `route="/panic"`)
	})
}

func TestLogger_PanickingHandler(t *testing.T) {
	r, tr := setupTest(t)
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	r.Use(Logger(log))
	r.Use(Recovery(log, tr))
	r.GET("/panic", func(c *gin.Context) { panic("x") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	responses := logs.FilterMessage("response").All()
	require.Len(t, responses, 1)
	assert.EqualValues(t, http.StatusInternalServerError, responses[0].ContextMap()["status"])
}

func TestRateLimiter(t *testing.T) {
	t.Run("Rejects once the burst is spent", func(t *testing.T) {
		r, tr := setupTest(t)
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		r.Use(RateLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstCapacity: 2}, rdb, tr, zaptest.NewLogger(t)))
		r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 3)
		for i := range codes {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
			codes[i] = w.Code
			if w.Code == http.StatusTooManyRequests {
				assert.JSONEq(t,
					`{"error":"too many requests","message":"rate limit exceeded: 1.00 requests/second (burst capacity: 2)"}`,
					w.Body.String())
			}
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Fails open when redis is down", func(t *testing.T) {
		r, tr := setupTest(t)
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = rdb.Close() })
		mr.Close()

		r.Use(RateLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstCapacity: 1}, rdb, tr, zaptest.NewLogger(t)))
		r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })

		for range 3 {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("Nil client is a no-op", func(t *testing.T) {
		r, tr := setupTest(t)
		r.Use(RateLimiter(RateLimitConfig{}, nil, tr, zaptest.NewLogger(t)))
		r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

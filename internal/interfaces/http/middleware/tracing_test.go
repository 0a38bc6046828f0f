package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// withSpanRecorder installs a recording tracer provider for the duration of a test.
func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	return recorder
}

func spanAttribute(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, attr := range span.Attributes() {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	recorder := withSpanRecorder(t)

	r := gin.New()
	r.Use(TracingWithConfig(TracingConfig{ServiceName: "gestor-backend", Enabled: false}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.Ended())
}

func TestTracingWithConfig_RecordsSpan(t *testing.T) {
	recorder := withSpanRecorder(t)

	r := gin.New()
	r.Use(RequestID())
	r.Use(TracingWithConfig(DefaultTracingConfig()))
	r.GET("/api/v1/geo/regions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/geo/regions/abc", nil)
	req.Header.Set("X-Request-ID", "req-trace-1")
	r.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	value, ok := spanAttribute(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-trace-1", value.AsString())
}

func TestTracingWithConfig_UserIDFromClaims(t *testing.T) {
	recorder := withSpanRecorder(t)

	r := gin.New()
	r.Use(TracingWithConfig(DefaultTracingConfig()))
	r.Use(func(c *gin.Context) {
		c.Set(JWTUserIDKey, "user-123")
		c.Next()
	})
	r.Use(TracingAttributeInjector())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	value, ok := spanAttribute(spans[0], "user_id")
	require.True(t, ok)
	assert.Equal(t, "user-123", value.AsString())
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantError  bool
		wantReason string
	}{
		{"200 leaves span unset", http.StatusOK, false, ""},
		{"401 marks unauthorized", http.StatusUnauthorized, true, "Unauthorized"},
		{"403 marks forbidden", http.StatusForbidden, true, "Forbidden"},
		{"404 marks not found", http.StatusNotFound, true, "Not Found"},
		{"409 marks client error", http.StatusConflict, true, "Client Error"},
		{"500 marks server error", http.StatusInternalServerError, true, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := withSpanRecorder(t)

			r := gin.New()
			r.Use(TracingWithConfig(DefaultTracingConfig()))
			r.Use(SpanErrorMarker())
			r.GET("/status", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			if tt.wantError {
				assert.Equal(t, codes.Error, spans[0].Status().Code)
				assert.Equal(t, tt.wantReason, spans[0].Status().Description)
			} else {
				assert.NotEqual(t, codes.Error, spans[0].Status().Code)
			}
		})
	}
}

func TestGetTraceRequestID_PrefersContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Request-ID", "header-id")
	c.Set("request_id", "context-id")

	assert.Equal(t, "context-id", getTraceRequestID(c))
}

func TestGetTraceRequestID_TruncatesLongHeader(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Request-ID", strings.Repeat("a", MaxRequestIDLength+50))

	assert.Len(t, getTraceRequestID(c), MaxRequestIDLength)
}

func TestGetTraceUserID_MissingClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, getTraceUserID(c))
}

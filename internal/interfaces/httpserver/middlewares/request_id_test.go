package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"taborra-server/whatsapp-bridge/internal/interfaces/httpserver/middlewares"
	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

func serveWithRequestID(t *testing.T, handler gin.HandlerFunc, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(middlewares.RequestID())
	engine.GET("/", handler)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestRequestID_PropagatesHeaderIntoErrors(t *testing.T) {
	var seen string
	resp := serveWithRequestID(t, func(c *gin.Context) {
		perr := platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal, "boom", nil, "")
		seen = perr.GetRequestID()
		c.Status(http.StatusOK)
	}, map[string]string{"X-Request-Id": "req-123"})

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", resp.Header().Get("X-Request-Id"))
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var fromGin, fromRequestCtx string
	resp := serveWithRequestID(t, func(c *gin.Context) {
		fromGin = middlewares.RequestIDFromContext(c)
		perr := platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal, "boom", nil, "")
		fromRequestCtx = perr.GetRequestID()
		c.Status(http.StatusOK)
	}, nil)

	assert.NotEmpty(t, fromGin)
	assert.Equal(t, fromGin, fromRequestCtx)
	assert.Equal(t, fromGin, resp.Header().Get("X-Request-Id"))
}

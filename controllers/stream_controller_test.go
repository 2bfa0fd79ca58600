package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orderhub/realtime"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStreamOrdersUnavailableWithoutFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := NewStreamController(realtime.NewFeed(nil))

	r := gin.New()
	r.GET("/admin/orders/stream", func(c *gin.Context) {
		c.Set("restaurant_id", 7)
		ctrl.StreamOrders(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders/stream", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Realtime feed is not available")
}

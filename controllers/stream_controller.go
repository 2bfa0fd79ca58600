package controllers

import (
	"io"
	"log"
	"net/http"

	"orderhub/models"
	"orderhub/realtime"
	"orderhub/repositories"

	"github.com/gin-gonic/gin"
)

const streamSeedLimit = 50

type StreamController struct {
	feed      *realtime.Feed
	orderRepo *repositories.OrderRepository
}

func NewStreamController(feed *realtime.Feed) *StreamController {
	return &StreamController{
		feed:      feed,
		orderRepo: repositories.NewOrderRepository(),
	}
}

// @Summary Order event stream
// @Description Server-sent events for the authenticated restaurant. Opens with
// a snapshot of recent orders, then emits the merged order record for every
// insert/update change. One live view per connected dashboard.
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce text/event-stream
// @Router /admin/orders/stream [get]
func (ctrl *StreamController) StreamOrders(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")

	if !ctrl.feed.Enabled() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Success: false,
			Message: "Realtime feed is not available",
		})
		return
	}

	ctx := c.Request.Context()

	recent, _, err := ctrl.orderRepo.GetAllOrders(ctx, restaurantID, "", "", streamSeedLimit, 0)
	if err != nil {
		log.Printf("Failed to seed order stream for restaurant %d: %v", restaurantID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load orders",
		})
		return
	}

	sub, err := ctrl.feed.Subscribe(ctx, restaurantID)
	if err != nil {
		log.Printf("Failed to subscribe restaurant %d: %v", restaurantID, err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Success: false,
			Message: "Realtime feed is not available",
		})
		return
	}
	defer sub.Close()

	view := realtime.NewOrderSync(restaurantID, ctrl.orderRepo, nil)
	view.Seed(recent)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("snapshot", view.Orders())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			order, err := view.Apply(ctx, ev)
			if err != nil {
				log.Printf("Failed to apply %s event for %s: %v", ev.Kind, ev.OrderNumber, err)
				return true
			}
			if order != nil {
				c.SSEvent(ev.Kind, order)
			}
			return true
		case <-ctx.Done():
			return false
		}
	})
}

package controllers

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"

	"orderhub/models"
	"orderhub/realtime"
	"orderhub/repositories"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderRepo *repositories.OrderRepository
	feed      *realtime.Feed
}

func NewOrderController(feed *realtime.Feed) *OrderController {
	return &OrderController{
		orderRepo: repositories.NewOrderRepository(),
		feed:      feed,
	}
}

func (ctrl *OrderController) getPaginationParams(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}

	offset = (page - 1) * limit
	return page, limit, offset
}

// @Summary Get all orders
// @Description Paginated order list for the authenticated restaurant
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by order number"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")
	page, limit, offset := ctrl.getPaginationParams(c, 10)

	status := c.Query("status")
	search := c.Query("search")

	orders, total, err := ctrl.orderRepo.GetAllOrders(c.Request.Context(), restaurantID, status, search, limit, offset)
	if err != nil {
		log.Println("Failed to list orders:", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve orders",
		})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    orders,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

// @Summary Get order by ID
// @Description Full order with customer and item snapshots
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")
	id, _ := strconv.Atoi(c.Param("id"))

	if id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid order ID",
		})
		return
	}

	ctx := c.Request.Context()

	orderNumber, err := ctrl.orderRepo.GetOrderNumberByID(ctx, restaurantID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
		return
	}

	order, err := ctrl.orderRepo.GetOrderByNumber(ctx, restaurantID, orderNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved successfully",
		Data:    order,
	})
}

// @Summary Update order status
// @Description Set a new status; the change is pushed to the realtime feed
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param status body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")
	id, _ := strconv.Atoi(c.Param("id"))

	if id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid order ID",
		})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid status",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	if err := ctrl.orderRepo.UpdateStatus(ctx, restaurantID, id, req.Status); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
		return
	}

	if orderNumber, err := ctrl.orderRepo.GetOrderNumberByID(ctx, restaurantID, id); err == nil {
		if err := ctrl.feed.PublishUpdate(context.Background(), restaurantID, orderNumber,
			map[string]interface{}{"status": req.Status}); err != nil {
			log.Printf("Failed to publish status update for %s: %v", orderNumber, err)
		}
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order status updated successfully",
		Data:    gin.H{"id": id, "status": req.Status},
	})
}

// @Summary Dashboard
// @Description Order and revenue counters for the admin dashboard
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *OrderController) GetDashboard(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")

	stats, err := ctrl.orderRepo.GetDashboardStats(c.Request.Context(), restaurantID)
	if err != nil {
		log.Println("Failed to load dashboard:", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Dashboard retrieved successfully",
		Data:    stats,
	})
}

package controllers

import (
	"errors"
	"log"
	"net/http"

	"orderhub/models"
	"orderhub/repositories"
	"orderhub/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	cartService    *services.CartService
	orderService   *services.OrderService
	orderRepo      *repositories.OrderRepository
	restaurantRepo *repositories.RestaurantRepository
	emailService   *models.EmailService
}

func NewCheckoutController(cartService *services.CartService, orderService *services.OrderService) *CheckoutController {
	emailService, err := models.NewEmailService()
	if err != nil {
		log.Println("Email service disabled:", err)
	}

	return &CheckoutController{
		cartService:    cartService,
		orderService:   orderService,
		orderRepo:      repositories.NewOrderRepository(),
		restaurantRepo: repositories.NewRestaurantRepository(),
		emailService:   emailService,
	}
}

// @Summary Checkout
// @Description Submit the session cart as an order
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Param checkout body models.CheckoutRequest true "Checkout data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid checkout data",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	cart, err := ctrl.cartService.Get(ctx, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load cart",
		})
		return
	}

	if cart.RestaurantID != 0 && cart.RestaurantID != req.RestaurantID {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Cart belongs to a different restaurant",
		})
		return
	}

	restaurant, err := ctrl.restaurantRepo.FindByID(ctx, req.RestaurantID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Restaurant not found",
		})
		return
	}

	// Customer identification happens before submission; a failure here
	// aborts without touching the orders table.
	customer, err := ctrl.orderRepo.UpsertCustomer(ctx, req.RestaurantID, req.CustomerName, req.CustomerPhone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to identify customer",
		})
		return
	}

	var deliveryFee float64
	if req.DeliveryType == models.DeliveryTypeDelivery {
		deliveryFee = restaurant.DeliveryFee
	}

	order, err := ctrl.orderService.Submit(ctx, services.SubmitOrderInput{
		RestaurantID:  req.RestaurantID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		Items:         cart.Items,
		DeliveryType:  req.DeliveryType,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		DeliveryFee:   deliveryFee,
		Observation:   req.Observation,
	})
	if err != nil {
		respondSubmitError(c, err)
		return
	}

	if err := ctrl.cartService.Clear(ctx, key); err != nil {
		log.Printf("Failed to clear cart %s after checkout: %v", key, err)
	}

	if ctrl.emailService != nil && req.CustomerEmail != "" {
		go func() {
			if err := ctrl.emailService.SendOrderConfirmationEmail(req.CustomerEmail, restaurant.Name, order.OrderNumber, order.Total); err != nil {
				log.Printf("Failed to send confirmation email for %s: %v", order.OrderNumber, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

func respondSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Cart is empty",
		})
	case errors.Is(err, models.ErrMissingAddress):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Address is required for delivery orders",
		})
	case errors.Is(err, models.ErrMissingCustomer):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Customer identification is required",
		})
	case errors.Is(err, models.ErrProductUnavailable):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Message: "An item is no longer available. Please refresh the menu.",
			Error:   "product_unavailable",
		})
	default:
		var persistenceErr *models.PersistenceError
		if errors.As(err, &persistenceErr) {
			log.Printf("Order submission failed: %v", persistenceErr)
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to submit order. Please try again.",
		})
	}
}

package controllers

import (
	"errors"
	"net/http"

	"orderhub/models"
	"orderhub/repositories"
	"orderhub/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartController struct {
	cartService *services.CartService
	menuRepo    *repositories.MenuRepository
	pricing     *services.PricingService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{
		cartService: cartService,
		menuRepo:    repositories.NewMenuRepository(),
		pricing:     services.NewPricingService(),
	}
}

func sessionKey(c *gin.Context) (string, bool) {
	key := c.GetHeader("X-Session-Id")
	if key == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "X-Session-Id header is required",
		})
		return "", false
	}
	return key, true
}

// @Summary Get cart
// @Description Get the session cart
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.Get(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load cart",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved successfully",
		Data:    gin.H{"cart": cart, "total": cart.Total()},
	})
}

// @Summary Add item to cart
// @Description Price and add a product configuration. Returns 409 when the
// cart is bound to another restaurant and force is not set.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Param item body models.AddItemRequest true "Item"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid item data",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	product, err := ctrl.menuRepo.GetProductByID(ctx, req.RestaurantID, req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Product not found",
		})
		return
	}

	item := models.CartItem{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		Observation: req.Observation,
	}

	var unitPrice float64
	var selected []models.SelectedOption

	if req.HalfAndHalf != nil {
		second, err := ctrl.menuRepo.GetProductByID(ctx, req.RestaurantID, req.HalfAndHalf.SecondProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Product not found",
			})
			return
		}

		unitPrice, selected, err = ctrl.pricing.HalfAndHalfUnitPrice(*product, *second, req.Selections, req.HalfAndHalf.SecondSelections)
		if err != nil {
			respondPricingError(c, err)
			return
		}

		item.UnitBasePrice = max(product.Price, second.Price)
		item.HalfAndHalf = &models.HalfAndHalf{
			FirstProductID:  product.ID,
			FirstName:       product.Name,
			SecondProductID: second.ID,
			SecondName:      second.Name,
		}
	} else {
		unitPrice, selected, err = ctrl.pricing.UnitPrice(*product, req.Selections)
		if err != nil {
			respondPricingError(c, err)
			return
		}
		item.UnitBasePrice = product.Price
	}

	item.SelectedOptions = selected
	item.TotalPrice = ctrl.pricing.LineTotal(unitPrice, req.Quantity)

	cart, err := ctrl.cartService.AddItem(ctx, key, req.RestaurantID, item, req.Force)
	if errors.Is(err, models.ErrCartConflict) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Message: "Your cart has items from another restaurant. Confirm to start a new cart.",
			Error:   "cart_conflict",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    gin.H{"cart": cart, "total": cart.Total()},
	})
}

// @Summary Remove cart item
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Param id path string true "Item ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.RemoveItem(c.Request.Context(), key, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed",
		Data:    gin.H{"cart": cart, "total": cart.Total()},
	})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.Clear(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
	})
}

func respondPricingError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Message: validationErr.Error(),
			Error:   "validation_error",
		})
		return
	}
	if errors.Is(err, models.ErrProductUnavailable) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Message: "An item is no longer available. Please refresh the menu.",
			Error:   "product_unavailable",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Message: "Failed to price item",
	})
}

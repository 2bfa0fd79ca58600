package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"orderhub/config"
	"orderhub/models"
	"orderhub/repositories"
	"orderhub/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	menuRepo       *repositories.MenuRepository
	restaurantRepo *repositories.RestaurantRepository
	pricing        *services.PricingService
}

func NewMenuController() *MenuController {
	return &MenuController{
		menuRepo:       repositories.NewMenuRepository(),
		restaurantRepo: repositories.NewRestaurantRepository(),
		pricing:        services.NewPricingService(),
	}
}

// menuProductView decorates a product with its catalog display pricing.
type menuProductView struct {
	models.Product
	MinimumPrice     float64 `json:"minimum_price"`
	HasVariablePrice bool    `json:"has_variable_price"`
}

type menuView struct {
	Restaurant *models.Restaurant `json:"restaurant"`
	Categories []models.Category  `json:"categories"`
	Products   []menuProductView  `json:"products"`
}

func menuCacheKey(restaurantID int) string {
	return fmt.Sprintf("menu_%d", restaurantID)
}

func invalidateMenuCache(restaurantID int) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(context.Background(), menuCacheKey(restaurantID))
}

// @Summary Get restaurant menu
// @Description Public menu: categories and active products with option groups
// @Tags Menu
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{slug}/menu [get]
func (ctrl *MenuController) GetMenu(c *gin.Context) {
	slug := c.Param("slug")

	restaurant, err := ctrl.restaurantRepo.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Restaurant not found",
		})
		return
	}

	ctx := c.Request.Context()
	cacheKey := menuCacheKey(restaurant.ID)

	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var view menuView
			if json.Unmarshal([]byte(cached), &view) == nil {
				c.JSON(http.StatusOK, models.Response{
					Success: true,
					Message: "Menu retrieved successfully",
					Data:    view,
				})
				return
			}
		}
	}

	categories, err := ctrl.menuRepo.GetCategories(ctx, restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load menu",
		})
		return
	}

	products, err := ctrl.menuRepo.GetMenu(ctx, restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load menu",
		})
		return
	}

	views := make([]menuProductView, 0, len(products))
	for _, p := range products {
		views = append(views, menuProductView{
			Product:          p,
			MinimumPrice:     ctrl.pricing.MinimumPrice(p),
			HasVariablePrice: ctrl.pricing.HasVariablePrice(p),
		})
	}

	view := menuView{Restaurant: restaurant, Categories: categories, Products: views}

	if config.RedisClient != nil {
		if raw, err := json.Marshal(view); err == nil {
			config.RedisClient.Set(ctx, cacheKey, raw, 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Menu retrieved successfully",
		Data:    view,
	})
}

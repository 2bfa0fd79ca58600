package controllers

import (
	"net/http"

	"orderhub/libs"
	"orderhub/models"
	"orderhub/repositories"
	"orderhub/services"
	"orderhub/utils"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	authService    *services.AuthService
	restaurantRepo *repositories.RestaurantRepository
}

func NewOnboardingController() *OnboardingController {
	return &OnboardingController{
		authService:    services.NewAuthService(),
		restaurantRepo: repositories.NewRestaurantRepository(),
	}
}

// @Summary Register restaurant
// @Description Create a restaurant with its owner account
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param registration body models.RegisterRestaurantRequest true "Registration data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /onboarding/register [post]
func (ctrl *OnboardingController) Register(c *gin.Context) {
	var req models.RegisterRestaurantRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid registration data",
			Error:   err.Error(),
		})
		return
	}

	result, err := ctrl.authService.RegisterRestaurant(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Restaurant registered successfully",
		Data:    result,
	})
}

// @Summary Upload restaurant logo
// @Description Upload the restaurant logo image
// @Tags Onboarding
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "Logo image"
// @Success 200 {object} models.Response
// @Router /admin/restaurant/logo [post]
func (ctrl *OnboardingController) UploadLogo(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Logo file is required",
		})
		return
	}

	localPath, err := utils.SaveTempImage(c, fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	logoURL, err := libs.UploadImage(localPath, "logos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to upload logo",
			Error:   err.Error(),
		})
		return
	}

	if err := ctrl.restaurantRepo.UpdateLogo(c.Request.Context(), restaurantID, logoURL); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save logo",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logo uploaded successfully",
		Data:    gin.H{"logo_url": logoURL},
	})
}

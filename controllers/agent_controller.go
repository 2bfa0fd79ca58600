package controllers

import (
	"net/http"

	"orderhub/models"
	"orderhub/repositories"
	"orderhub/services"

	"github.com/gin-gonic/gin"
)

type AgentController struct {
	agentService   *services.AgentService
	restaurantRepo *repositories.RestaurantRepository
}

func NewAgentController(agentService *services.AgentService) *AgentController {
	return &AgentController{
		agentService:   agentService,
		restaurantRepo: repositories.NewRestaurantRepository(),
	}
}

// @Summary Chat with the ordering assistant
// @Description Conversational ordering grounded on the restaurant's menu
// @Tags Agent
// @Accept json
// @Produce json
// @Param chat body models.AgentChatRequest true "Chat message"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /agent/chat [post]
func (ctrl *AgentController) Chat(c *gin.Context) {
	var req models.AgentChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid chat request",
			Error:   err.Error(),
		})
		return
	}

	restaurant, err := ctrl.restaurantRepo.FindByID(c.Request.Context(), req.RestaurantID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Restaurant not found",
		})
		return
	}

	reply, err := ctrl.agentService.Chat(c.Request.Context(), restaurant, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Message: "Assistant is unavailable. Please try again.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Reply generated",
		Data:    models.AgentChatResponse{Reply: reply},
	})
}

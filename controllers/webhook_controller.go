package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"orderhub/config"
	"orderhub/models"

	"github.com/gin-gonic/gin"
)

// RestaurantResolver maps an inbound WhatsApp number to its restaurant.
type RestaurantResolver interface {
	FindByWhatsAppNumber(ctx context.Context, number string) (*models.Restaurant, error)
}

// AgentResponder produces the conversational reply for one message.
type AgentResponder interface {
	Chat(ctx context.Context, restaurant *models.Restaurant, req models.AgentChatRequest) (string, error)
}

// ReplySender relays the agent's reply through the provider's outbound API.
type ReplySender func(ctx context.Context, phoneNumberID, to, text string) error

type WebhookController struct {
	restaurants RestaurantResolver
	agent       AgentResponder
	send        ReplySender
}

func NewWebhookController(restaurants RestaurantResolver, agent AgentResponder) *WebhookController {
	return &WebhookController{
		restaurants: restaurants,
		agent:       agent,
		send:        sendWhatsAppMessage,
	}
}

// whatsappPayload mirrors the provider's inbound event envelope.
type whatsappPayload struct {
	Entry []struct {
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Metadata struct {
					DisplayPhoneNumber string `json:"display_phone_number"`
					PhoneNumberID      string `json:"phone_number_id"`
				} `json:"metadata"`
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// @Summary WhatsApp webhook verification
// @Description Provider handshake: echoes the challenge when the verify token matches
// @Tags Webhooks
// @Produce plain
// @Router /webhooks/whatsapp [get]
func (ctrl *WebhookController) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == config.AppConfig.WhatsAppVerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// @Summary WhatsApp webhook
// @Description Inbound provider events. Non-message events and empty texts are ignored without error.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Router /webhooks/whatsapp [post]
func (ctrl *WebhookController) Receive(c *gin.Context) {
	var payload whatsappPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		// The provider retries on non-2xx; a malformed body is not worth a retry storm.
		log.Println("Ignoring malformed webhook payload:", err)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	ctx := c.Request.Context()
	handled := false

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				log.Printf("Ignoring webhook event of type %q", change.Field)
				continue
			}

			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text.Body == "" {
					log.Printf("Ignoring non-text message from %s", msg.From)
					continue
				}

				ctrl.handleMessage(ctx, change.Value.Metadata.DisplayPhoneNumber,
					change.Value.Metadata.PhoneNumberID, msg.From, msg.Text.Body)
				handled = true
			}
		}
	}

	status := "ignored"
	if handled {
		status = "processed"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (ctrl *WebhookController) handleMessage(ctx context.Context, businessNumber, phoneNumberID, from, text string) {
	restaurant, err := ctrl.restaurants.FindByWhatsAppNumber(ctx, businessNumber)
	if err != nil {
		log.Printf("No restaurant for WhatsApp number %s: %v", businessNumber, err)
		return
	}

	reply, err := ctrl.agent.Chat(ctx, restaurant, models.AgentChatRequest{
		RestaurantID: restaurant.ID,
		SessionID:    from,
		Message:      text,
	})
	if err != nil {
		log.Printf("Agent failed for %s: %v", from, err)
		return
	}

	if err := ctrl.send(ctx, phoneNumberID, from, reply); err != nil {
		log.Printf("Failed to send WhatsApp reply to %s: %v", from, err)
	}
}

func sendWhatsAppMessage(ctx context.Context, phoneNumberID, to, text string) error {
	if config.AppConfig.WhatsAppAccessToken == "" {
		return fmt.Errorf("whatsapp access token not configured")
	}

	body, err := json.Marshal(map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": text},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", config.AppConfig.WhatsAppAPIBase, phoneNumberID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.WhatsAppAccessToken)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send failed with status %d", resp.StatusCode)
	}
	return nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"orderhub/models"
)

const agentFallbackReply = "Thanks for your message! Our automated assistant is offline right now. " +
	"Please browse the menu and place your order through the link in our profile."

// MenuProvider feeds the agent the restaurant's active menu for prompting.
type MenuProvider interface {
	GetMenu(ctx context.Context, restaurantID int) ([]models.Product, error)
}

// AgentService answers customer messages with a language-model completion
// grounded on the restaurant's menu. Without a credential it degrades to a
// canned reply instead of failing.
type AgentService struct {
	menus      MenuProvider
	pricing    *PricingService
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

func NewAgentService(menus MenuProvider, apiKey, model string) *AgentService {
	return &AgentService{
		menus:      menus,
		pricing:    NewPricingService(),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://generativelanguage.googleapis.com/v1beta",
	}
}

func (s *AgentService) Chat(ctx context.Context, restaurant *models.Restaurant, req models.AgentChatRequest) (string, error) {
	if s.apiKey == "" {
		return agentFallbackReply, nil
	}

	products, err := s.menus.GetMenu(ctx, restaurant.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load menu for prompt: %w", err)
	}

	prompt := s.BuildSystemPrompt(restaurant, products)
	return s.generate(ctx, prompt, req.History, req.Message)
}

// BuildSystemPrompt renders the active menu into the agent's instructions.
// Products with required option groups are listed with their "from" price.
func (s *AgentService) BuildSystemPrompt(restaurant *models.Restaurant, products []models.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are the ordering assistant for the restaurant %q.\n", restaurant.Name)
	b.WriteString("Answer in the customer's language, be brief and friendly.\n")
	b.WriteString("Only offer items from the menu below. Never invent items or prices.\n")
	b.WriteString("When the customer is done, summarize the order with the total and ask for delivery or pickup.\n\n")
	b.WriteString("MENU:\n")

	for _, p := range products {
		if s.pricing.HasVariablePrice(p) && p.Price == 0 {
			fmt.Fprintf(&b, "- %s (from %.2f)", p.Name, s.pricing.MinimumPrice(p))
		} else {
			fmt.Fprintf(&b, "- %s (%.2f)", p.Name, p.Price)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, ": %s", p.Description)
		}
		b.WriteString("\n")

		for _, g := range p.OptionGroups {
			names := make([]string, 0, len(g.Options))
			for _, opt := range g.Options {
				if !opt.IsAvailable {
					continue
				}
				if opt.Price > 0 {
					names = append(names, fmt.Sprintf("%s (+%.2f)", opt.Name, opt.Price))
				} else {
					names = append(names, opt.Name)
				}
			}
			fmt.Fprintf(&b, "    %s: %s\n", g.Name, strings.Join(names, ", "))
		}
	}

	return b.String()
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

func (s *AgentService) generate(ctx context.Context, systemPrompt string, history []models.AgentChatMessage, message string) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: msg.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})

	payload := map[string]any{
		"systemInstruction": geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		"contents":          contents,
		"generationConfig": map[string]any{
			"temperature":     0.4,
			"maxOutputTokens": 1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: %s", string(raw))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

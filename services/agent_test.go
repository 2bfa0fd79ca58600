package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenuProvider struct {
	products []models.Product
	calls    int
}

func (f *fakeMenuProvider) GetMenu(ctx context.Context, restaurantID int) ([]models.Product, error) {
	f.calls++
	return f.products, nil
}

func TestChatFallsBackWithoutCredential(t *testing.T) {
	menus := &fakeMenuProvider{}
	svc := NewAgentService(menus, "", "gemini-2.0-flash")

	reply, err := svc.Chat(context.Background(), &models.Restaurant{ID: 1, Name: "Bella Pizza"},
		models.AgentChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, agentFallbackReply, reply)
	assert.Zero(t, menus.calls, "no menu fetch without a credential")
}

func TestBuildSystemPromptRendersMenu(t *testing.T) {
	svc := NewAgentService(nil, "", "gemini-2.0-flash")

	products := []models.Product{
		{
			Name:        "Build Your Pizza",
			Description: "Pick a size and toppings",
			Price:       0,
			IsActive:    true,
			OptionGroups: []models.OptionGroup{
				{
					Name:         "Size",
					MinSelection: 1,
					MaxSelection: 1,
					Options: []models.Option{
						{ID: 1, Name: "Medium", Price: 25.00, IsAvailable: true},
						{ID: 2, Name: "Large", Price: 32.00, IsAvailable: true},
						{ID: 3, Name: "Giant", Price: 40.00, IsAvailable: false},
					},
				},
			},
		},
		{Name: "Soda", Price: 6.00, IsActive: true},
	}

	prompt := svc.BuildSystemPrompt(&models.Restaurant{Name: "Bella Pizza"}, products)

	assert.Contains(t, prompt, `"Bella Pizza"`)
	assert.Contains(t, prompt, "Build Your Pizza (from 25.00)")
	assert.Contains(t, prompt, "Pick a size and toppings")
	assert.Contains(t, prompt, "Medium (+25.00), Large (+32.00)")
	assert.NotContains(t, prompt, "Giant")
	assert.Contains(t, prompt, "Soda (6.00)")
}

func TestChatSendsHistoryAndMenuToModel(t *testing.T) {
	var captured struct {
		SystemInstruction struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"systemInstruction"`
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"We have Soda for 6.00"}]}}]}`))
	}))
	defer server.Close()

	menus := &fakeMenuProvider{products: []models.Product{{Name: "Soda", Price: 6.00, IsActive: true}}}
	svc := NewAgentService(menus, "test-key", "gemini-2.0-flash")
	svc.baseURL = server.URL

	reply, err := svc.Chat(context.Background(), &models.Restaurant{ID: 1, Name: "Bella Pizza"},
		models.AgentChatRequest{
			Message: "what drinks do you have?",
			History: []models.AgentChatMessage{
				{Role: "user", Content: "hello"},
				{Role: "assistant", Content: "hi, welcome!"},
			},
		})
	require.NoError(t, err)
	assert.Equal(t, "We have Soda for 6.00", reply)
	assert.Equal(t, 1, menus.calls)

	require.Len(t, captured.SystemInstruction.Parts, 1)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "Soda")

	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	assert.Equal(t, "what drinks do you have?", captured.Contents[2].Parts[0].Text)
}

func TestChatSurfacesModelAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	menus := &fakeMenuProvider{}
	svc := NewAgentService(menus, "test-key", "gemini-2.0-flash")
	svc.baseURL = server.URL

	_, err := svc.Chat(context.Background(), &models.Restaurant{ID: 1}, models.AgentChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini api error")
}

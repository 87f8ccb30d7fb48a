package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/logger"
	"go.uber.org/zap"
)

var _ TextGenerator = new(OllamaClient)

// OllamaClient talks to a local ollama server over its chat API.
type OllamaClient struct {
	baseUrl    string
	model      string
	maxRetries int
	httpClient *http.Client
}

func NewOllamaClient(conf config.OllamaConfig) *OllamaClient {
	return &OllamaClient{
		baseUrl:    conf.BaseUrl,
		model:      conf.Model,
		maxRetries: conf.MaxRetries,
		httpClient: &http.Client{Timeout: time.Duration(conf.TimeoutSeconds) * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	var messages []chatMessage
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": 0.7,
			"top_p":       0.9,
			"num_predict": 2000,
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		response, err := c.chat(ctx, body)
		if err == nil {
			return response, nil
		}
		lastErr = err
		logger.Warn("ollama chat failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return "", fmt.Errorf("ollama unavailable after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *OllamaClient) chat(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	return chatResp.Message.Content, nil
}

// Available probes the model list endpoint.
func (c *OllamaClient) Available(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("ollama not reachable", zap.String("url", c.baseUrl), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

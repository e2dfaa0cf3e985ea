package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// OpenAIClient calls the OpenAI chat completions API.
type OpenAIClient struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// New returns an OpenAI-backed client, or Disabled when no key is set.
func New(apiKey, model, baseURL, proxyURL string) Client {
	if apiKey == "" {
		return Disabled{}
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &OpenAIClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (c *OpenAIClient) Name() string { return "openai" }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Chat sends the messages and returns the model's reply. Any transport,
// status, or decode problem comes back as a failed Result.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) Result {
	payload := chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: fmt.Sprintf("marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{Err: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Result{Err: fmt.Sprintf("chat completion: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Err: fmt.Sprintf("read response: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return Result{Err: fmt.Sprintf("openai: status %d, body: %s", resp.StatusCode, string(respBody))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Result{Err: fmt.Sprintf("decode response: %v", err)}
	}
	if parsed.Error != nil {
		return Result{Err: fmt.Sprintf("openai api error: %s", parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 {
		return Result{Err: "openai: empty choices"}
	}

	return Result{Success: true, ReplyText: parsed.Choices[0].Message.Content}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-assistant/pkg/types"
)

const (
	// DefaultModel is the chat model used when the config leaves it blank.
	DefaultModel = "llama-3.3-70b-versatile"

	defaultTemperature = 0.2
	defaultMaxTokens   = 1024
)

// groqAPIURL is the Groq chat-completions endpoint. Package-level var
// for test substitution.
var groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqClient calls the Groq OpenAI-compatible chat-completions API.
type GroqClient struct {
	cfg    types.LLMConfig
	client *http.Client
	log    zerolog.Logger
}

// NewGroqClient builds a client from config, filling model, temperature,
// and token defaults.
func NewGroqClient(cfg types.LLMConfig, log zerolog.Logger) *GroqClient {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &GroqClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("component", "groq").Logger(),
	}
}

// groqRequest is the request body for the chat-completions endpoint.
type groqRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// groqResponse is the subset of the chat-completions response the
// assistant reads.
type groqResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Chat sends the conversation to the chat-completions endpoint and
// returns the assistant reply. A non-empty system prompt is prepended as
// the first message.
func (g *GroqClient) Chat(ctx context.Context, messages []Message, system string) (string, error) {
	wire := messages
	if system != "" {
		wire = append([]Message{{Role: "system", Content: system}}, messages...)
	}

	reqBody := groqRequest{
		Model:       g.cfg.Model,
		Messages:    wire,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	if g.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", g.cfg.UserAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Groq API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		return "", fmt.Errorf("Groq API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp groqResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Groq response: %w", err)
	}

	if len(gResp.Choices) == 0 {
		return "", fmt.Errorf("Groq API returned no choices")
	}

	g.log.Debug().
		Str("model", g.cfg.Model).
		Int("prompt_tokens", gResp.Usage.PromptTokens).
		Int("completion_tokens", gResp.Usage.CompletionTokens).
		Int("total_tokens", gResp.Usage.TotalTokens).
		Msg("chat completion")

	return gResp.Choices[0].Message.Content, nil
}

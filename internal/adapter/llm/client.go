// Package llm narrates forecast tables into prose through an
// OpenAI-compatible chat completion endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/config"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/observability"
)

// Generation parameters. Temperature zero keeps the narration
// deterministic; the stop token matches the served chat template.
const (
	temperature = 0
	maxTokens   = 8192
	stopToken   = "<|im_end|>"
)

// attemptPause separates consecutive submission attempts.
const attemptPause = 2 * time.Second

// Client is a chat completion client with bounded submission attempts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	attempts   int

	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates a chat client from the chat configuration.
func NewClient(cfg config.ChatConfig, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		attempts:   cfg.Attempts,
		logger:     logger,
		metrics:    metrics,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stop        []string      `json:"stop"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete submits one user prompt and returns the raw completion text. The
// request is attempted up to the configured number of times; an empty
// completion counts as a failure.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-clock.After(attemptPause):
			}
		}

		started := time.Now()
		content, err := c.complete(ctx, prompt)
		c.metrics.ChatDuration.Observe(time.Since(started).Seconds())
		if err == nil {
			c.metrics.ChatAttempts.WithLabelValues("success").Inc()
			return content, nil
		}
		c.metrics.ChatAttempts.WithLabelValues("error").Inc()
		c.logger.Warn("chat completion failed", "attempt", attempt, "error", err)
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("llm: %d attempts failed: %w", c.attempts, lastErr)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stop:        []string{stopToken},
	})
	if err != nil {
		return "", fmt.Errorf("llm: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", fmt.Errorf("llm: failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("llm: failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(payload))
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("llm: status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm: empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}

// SplitThink separates a completion into its chain-of-thought block and the
// final report. Completions without think markers are all report.
func SplitThink(text string) (think, report string) {
	if !strings.Contains(text, "</think>") {
		return "", strings.TrimSpace(text)
	}
	parts := strings.SplitN(text, "</think>", 2)
	think = strings.TrimSpace(strings.ReplaceAll(parts[0], "<think>", ""))
	return think, strings.TrimSpace(parts[1])
}

// Package llm holds the Gemini client used by the analyze command. The
// reduction pipeline never imports this package: scoring stays purely
// lexical, and the model only ever sees the already-reduced prompt.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"logsage/internal/config"
)

// Client is a thin wrapper over the GenAI SDK for one-shot RCA requests.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	maxRetries  int
	retryDelay  time.Duration
}

// New creates a Gemini client from configuration.
func New(ctx context.Context, cfg config.LLMConfig, retryDelay time.Duration) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or llm.api_key)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  retryDelay,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Analyze sends the RCA prompt and returns the model's diagnosis text.
// Retryable API failures (rate limits, transient server errors) are retried
// with exponential backoff; anything else fails immediately.
func (c *Client) Analyze(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	maxDelay := 30 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff(c.retryDelay, attempt-1, maxDelay)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err
		if !isRetryable(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{}
	if c.temperature > 0 {
		temp := c.temperature
		cfg.Temperature = &temp
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return text, nil
}

// isRetryable reports whether the error should trigger a retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"429", "500", "502", "503", "504", "connection refused", "timeout", "unavailable", "resource_exhausted"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// backoff calculates exponential backoff delay.
func backoff(base time.Duration, attempt int, max time.Duration) time.Duration {
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
	}
	if delay > max {
		delay = max
	}
	return delay
}

package openai

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

	"golang.org/x/time/rate"

	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/clients/ratelimit"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	"github.com/neuromap-brasil/neuromap/pkg/config"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Client sends clinic search prompts to the OpenAI Responses API.
type Client struct {
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
}

var _ providers.LanguageModelProvider = (*Client)(nil)

// NewClient creates a new OpenAI client. The API key is not part of the
// client; each Generate call carries the key of the user searching.
func NewClient(cfg *config.LLMConfig, metrics *observability.Metrics) *Client {
	model := defaultModel
	baseURL := defaultBaseURL
	rpm, burst := 0, 0
	if cfg != nil {
		if cfg.Model != "" {
			model = cfg.Model
		}
		if cfg.BaseURL != "" {
			baseURL = strings.TrimSuffix(cfg.BaseURL, "/")
		}
		rpm, burst = cfg.RateLimitRPM, cfg.RateLimitBurst
	}

	return &Client{
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: ratelimit.New(rpm, burst),
		metrics: metrics,
	}
}

// Name identifies the provider in logs and metrics
func (c *Client) Name() string {
	return "openai:" + c.model
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

// Generate sends prompt as a single user turn and returns the output text.
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", apperrors.NewMissingCredentialError()
	}

	if err := ratelimit.Wait(ctx, c.limiter); err != nil {
		return "", apperrors.NewExternalError("openai rate limiter wait aborted", err)
	}

	payload := map[string]interface{}{
		"model": c.model,
		"input": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode openai request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build openai request", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	text, err := c.do(req)
	observability.RecordLLMMetric(ctx, c.metrics, "openai", time.Since(start), err)
	return text, err
}

func (c *Client) do(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("openai request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain for connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)
		statusErr := fmt.Errorf("status %d", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", apperrors.NewUnauthorizedError("openai rejected the api key", statusErr)
		}
		return "", apperrors.NewExternalError("openai request failed", statusErr)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", apperrors.NewExternalError("failed to decode openai response", err)
	}

	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				return content.Text, nil
			}
		}
	}

	return "", apperrors.NewExternalError("openai response missing output text", errors.New("empty output"))
}

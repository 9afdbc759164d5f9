package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/clients/ratelimit"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	"github.com/neuromap-brasil/neuromap/pkg/config"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

const defaultModel = "gemini-1.5-flash"

// Client generates clinic listings with Google's Gemini API.
type Client struct {
	modelID  string
	endpoint string
	limiter  *rate.Limiter
	metrics  *observability.Metrics
}

var _ providers.LanguageModelProvider = (*Client)(nil)

// NewClient creates a Gemini provider. A genai client is opened per call
// because every search brings its own API key.
func NewClient(cfg *config.LLMConfig, metrics *observability.Metrics) *Client {
	modelID := defaultModel
	endpoint := ""
	rpm, burst := 0, 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Model) != "" {
			modelID = cfg.Model
		}
		endpoint = cfg.BaseURL
		rpm, burst = cfg.RateLimitRPM, cfg.RateLimitBurst
	}
	return &Client{
		modelID:  modelID,
		endpoint: endpoint,
		limiter:  ratelimit.New(rpm, burst),
		metrics:  metrics,
	}
}

// Name identifies the provider in logs and metrics
func (c *Client) Name() string {
	return "gemini:" + c.modelID
}

// Generate sends prompt and returns the concatenated text parts of the
// first candidate.
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", apperrors.NewMissingCredentialError()
	}

	if err := ratelimit.Wait(ctx, c.limiter); err != nil {
		return "", apperrors.NewExternalError("gemini rate limiter wait aborted", err)
	}

	start := time.Now()
	text, err := c.generate(ctx, apiKey, prompt)
	observability.RecordLLMMetric(ctx, c.metrics, "gemini", time.Since(start), err)
	return text, err
}

func (c *Client) generate(ctx context.Context, apiKey, prompt string) (string, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", apperrors.NewExternalError("failed to create gemini client", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.modelID)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", apperrors.NewExternalError("gemini returned no candidates", errors.New("empty response"))
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", apperrors.NewExternalError("gemini returned empty content", errors.New(candidate.FinishReason.String()))
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), nil
}

func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
			return apperrors.NewUnauthorizedError("gemini rejected the api key", err)
		case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key"):
			return apperrors.NewUnauthorizedError("gemini rejected the api key", err)
		}
	}
	return apperrors.NewExternalError("gemini request failed", err)
}

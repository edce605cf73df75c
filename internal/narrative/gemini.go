// Package narrative turns scored conditions into forecast prose using a
// hosted text generation model.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiClient calls the Gemini generateContent endpoint with retry and
// exponential backoff.
type GeminiClient struct {
	httpClient client.Interface
	apiKey     string
	model      string
	maxRetries int
	retryDelay time.Duration
	metrics    *observability.Metrics
}

type Option func(*GeminiClient)

// WithRetry sets the attempt budget and the base backoff delay.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *GeminiClient) {
		c.maxRetries = maxRetries
		c.retryDelay = delay
	}
}

func WithModel(model string) Option {
	return func(c *GeminiClient) {
		c.model = model
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *GeminiClient) {
		c.metrics = m
	}
}

func NewGeminiClient(httpClient client.Interface, apiKey string, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		model:      "gemini-1.5-flash",
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxRetries < 1 {
		c.maxRetries = 1
	}
	return c
}

// Generate returns the model's text for prompt. All failures wrap
// ErrGenerationFailed.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		c.count("failure")
		return "", fmt.Errorf("%w: API key not provided", ErrGenerationFailed)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		text, err := c.generateOnce(ctx, prompt)
		if err == nil {
			c.count("success")
			log.Debug().Int("attempt", attempt).Msg("Narrative generated")
			return text, nil
		}
		lastErr = err

		retryable := isRetryable(err)
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_retries", c.maxRetries).
			Bool("retryable", retryable).
			Msg("Narrative attempt failed")
		if !retryable || attempt == c.maxRetries {
			break
		}

		c.count("retry")
		delay := c.retryDelay * time.Duration(1<<(attempt-1))
		if err := sleep(ctx, delay); err != nil {
			lastErr = err
			break
		}
	}

	c.count("failure")
	return "", fmt.Errorf("%w: %w", ErrGenerationFailed, lastErr)
}

func (c *GeminiClient) generateOnce(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &permanentError{msg: fmt.Sprintf("encoding request: %v", err)}
	}

	path := fmt.Sprintf("/models/%s:generateContent?key=%s", c.model, url.QueryEscape(c.apiKey))
	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	decodeErr := json.Unmarshal(resp.Body, &parsed)
	if !resp.OK() {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil && parsed.Error != nil {
			apiErr.Message = parsed.Error.Message
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decoding response: %w", decodeErr)
	}
	if len(parsed.Candidates) == 0 {
		return "", &permanentError{msg: "response has no candidates"}
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &permanentError{msg: "response text is empty"}
	}
	return text, nil
}

func (c *GeminiClient) count(outcome string) {
	if c.metrics != nil {
		c.metrics.NarrativeRequests.WithLabelValues(outcome).Inc()
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package gemini implements the hosted-model provider on top of the Google
// GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spigell/career-referee/internal/ai"
	"github.com/spigell/career-referee/internal/logger"
	"github.com/spigell/career-referee/internal/utils"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	providerName = "gemini"

	defaultModel        = "gemini-2.5-flash"
	defaultMaxRetries   = 3
	defaultBaseDelay    = time.Second
	defaultMaxLogLength = 200
)

// Config holds the hosted-provider settings resolved from the configuration
// file and environment.
type Config struct {
	APIKey       string
	Model        string
	MaxRetries   int
	MaxLogLength int

	// BaseDelay is the first retry delay; it doubles on every further attempt.
	BaseDelay time.Duration
}

// contentCaller is the seam between retry handling and the genai transport,
// so tests can run without network access.
type contentCaller interface {
	call(ctx context.Context, model, system, prompt string) (string, error)
}

// Client is the hosted-model provider. A Client built without an API key
// short-circuits every Generate call with an unavailable error and never
// touches the network.
type Client struct {
	caller    contentCaller
	model     string
	retries   int
	baseDelay time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// New creates the Gemini provider. An empty API key is not an error here: the
// returned client reports itself unavailable on use, which lets the referee
// fall through to the next provider.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	baseDelay := cfg.BaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	client := &Client{
		model:     model,
		retries:   retries,
		baseDelay: baseDelay,
		maxLogLen: maxLogLen,
		logger:    logger.WithCommonFields(log, providerName, model),
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return client, nil
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	client.caller = &genaiCaller{client: genaiClient}

	return client, nil
}

func (c *Client) Name() string { return providerName }

// Generate builds the comparison prompt and sends it to Gemini, retrying
// transient failures (rate limits, 5xx, timeouts) with doubling delays up to
// the configured attempt count.
func (c *Client) Generate(ctx context.Context, req ai.Request) (string, error) {
	if c.caller == nil {
		return "", &ai.ProviderError{
			Provider: providerName,
			Kind:     ai.ErrUnavailable,
			Err:      errors.New("api key is not configured"),
		}
	}

	prompt := ai.BuildPrompt(req)

	c.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		output, err := c.caller.call(ctx, c.model, ai.SystemInstruction, prompt)
		if err == nil {
			if output = strings.TrimSpace(output); output != "" {
				c.logger.Debug("gemini generate content response",
					zap.Int("response_length", utf8.RuneCountInString(output)),
					zap.String("response_preview", utils.TruncateForLog(output, c.maxLogLen)),
				)
				return output, nil
			}
			err = errors.New("gemini api returned empty response")
		}

		lastErr = err

		if !isTransient(err) {
			break
		}

		if attempt == c.retries-1 {
			break
		}

		delay := c.baseDelay << attempt
		c.logger.Warn("transient gemini failure, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if waitErr := utils.WaitFor(ctx, delay); waitErr != nil {
			return "", &ai.ProviderError{Provider: providerName, Kind: ai.ErrTimeout, Err: waitErr}
		}
	}

	kind := ai.ErrExhausted
	if errors.Is(lastErr, context.DeadlineExceeded) || errors.Is(lastErr, context.Canceled) {
		kind = ai.ErrTimeout
	}

	return "", &ai.ProviderError{Provider: providerName, Kind: kind, Err: lastErr}
}

// isTransient reports whether the failure is worth another attempt: rate
// limits, server-side errors and network timeouts.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Empty responses are transient in practice.
	return strings.Contains(err.Error(), "empty response")
}

type genaiCaller struct {
	client *genai.Client
}

func (g *genaiCaller) call(ctx context.Context, model, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return builder.String(), nil
}

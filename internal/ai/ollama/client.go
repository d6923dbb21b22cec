// Package ollama implements the local-model provider against the Ollama REST
// API. It is preferred over hosted backends because local inference is free.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spigell/career-referee/internal/ai"
	"github.com/spigell/career-referee/internal/logger"
	"github.com/spigell/career-referee/internal/utils"

	"go.uber.org/zap"
)

const (
	providerName = "ollama"

	defaultBaseURL      = "http://localhost:11434"
	defaultTimeout      = 60 * time.Second
	probeTimeout        = 2 * time.Second
	defaultMaxLogLength = 200

	contentType = "application/json"
)

// Models tried in preference order when the config does not name any.
var defaultModels = []string{"llama3.1:8b", "llama3:8b", "llama2:7b", "mistral:7b"}

// Config holds the local-provider settings.
type Config struct {
	BaseURL      string
	Models       []string
	Timeout      time.Duration
	MaxLogLength int
}

// Client is the local-model provider. It walks the model preference list and
// returns the first non-empty completion.
type Client struct {
	baseURL    string
	models     []string
	maxLogLen  int
	logger     *zap.Logger
	HTTPClient *http.Client
}

// New creates the Ollama provider. No connection is attempted until Generate.
func New(cfg Config, log *zap.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	models := make([]string, 0, len(cfg.Models))
	for _, model := range cfg.Models {
		if model = strings.TrimSpace(model); model != "" {
			models = append(models, model)
		}
	}
	if len(models) == 0 {
		models = defaultModels
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Client{
		baseURL:    baseURL,
		models:     models,
		maxLogLen:  maxLogLen,
		logger:     logger.WithFields(log, zap.String(logger.FieldProvider, providerName)),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return providerName }

// Generate probes the local endpoint, then tries each model in preference
// order. Any failure of the current model (timeout, non-200, empty output)
// advances to the next one.
func (c *Client) Generate(ctx context.Context, req ai.Request) (string, error) {
	if err := c.probe(ctx); err != nil {
		return "", &ai.ProviderError{Provider: providerName, Kind: ai.ErrUnavailable, Err: err}
	}

	prompt := ai.BuildPrompt(req)

	var lastErr error
	for _, model := range c.models {
		output, err := c.generateWithModel(ctx, model, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return "", &ai.ProviderError{Provider: providerName, Kind: ai.ErrTimeout, Err: ctx.Err()}
			}

			c.logger.Debug("model failed, trying the next one",
				zap.String(logger.FieldModel, model),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		c.logger.Debug("ollama response",
			zap.String(logger.FieldModel, model),
			zap.Int("response_length", utf8.RuneCountInString(output)),
			zap.String("response_preview", utils.TruncateForLog(output, c.maxLogLen)),
		)

		return output, nil
	}

	return "", &ai.ProviderError{Provider: providerName, Kind: ai.ErrExhausted, Err: lastErr}
}

// probe checks that the Ollama endpoint answers at all before any expensive
// generation call.
func (c *Client) probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama endpoint is not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama endpoint probe: bad status: %s", resp.Status)
	}

	return nil
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (c *Client) generateWithModel(ctx context.Context, model, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.3,
			TopP:        0.9,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("make request",
		zap.String("url", req.URL.String()),
		zap.String(logger.FieldModel, model),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", err
	}

	output := strings.TrimSpace(response.Response)
	if output == "" {
		return "", errors.New("model returned empty output")
	}

	return output, nil
}

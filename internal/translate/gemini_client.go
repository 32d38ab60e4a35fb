package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lingobridge/internal/config"
	"lingobridge/internal/models"

	"go.uber.org/zap"
)

// GeminiClient translates by prompting a Gemini model.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewGeminiClient creates a new Gemini translation client.
func NewGeminiClient(cfg config.GeminiConfig, timeout time.Duration, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name implements Translator.
func (c *GeminiClient) Name() string {
	return config.ProviderGemini
}

// Translate asks the model for a translation of req.Text.
func (c *GeminiClient) Translate(ctx context.Context, req Request) (*Translation, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": buildPrompt(req)},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.2,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	apiURL := fmt.Sprintf("%s/models/%s:generateContent?%s",
		strings.TrimSuffix(c.baseURL, "/"), url.PathEscape(c.model), params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("Gemini API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode Gemini response: %w", err)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		c.logger.Debug("Gemini response has no candidate text")
		return nil, ErrUnexpectedResponse
	}

	var sb strings.Builder
	for _, p := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return &Translation{Text: strings.TrimSpace(sb.String())}, nil
}

// buildPrompt renders the instruction sent to the model. An empty source is
// sent as "auto".
func buildPrompt(req Request) string {
	source := req.SourceLang
	if source == "" {
		source = models.AutoDetect
	}
	return fmt.Sprintf("Translate the following text from %s to %s: %s", source, req.TargetLang, req.Text)
}

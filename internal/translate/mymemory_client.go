package translate

import (
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

// MyMemoryClient handles translation calls to the public MyMemory API.
type MyMemoryClient struct {
	baseURL string
	email   string
	client  *http.Client
	logger  *zap.Logger
}

// NewMyMemoryClient creates a new MyMemory translation client.
func NewMyMemoryClient(cfg config.MyMemoryConfig, timeout time.Duration, logger *zap.Logger) *MyMemoryClient {
	return &MyMemoryClient{
		baseURL: cfg.BaseURL,
		email:   cfg.Email,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name implements Translator.
func (c *MyMemoryClient) Name() string {
	return config.ProviderMyMemory
}

// Translate translates req.Text with a single GET /get call.
func (c *MyMemoryClient) Translate(ctx context.Context, req Request) (*Translation, error) {
	source := req.SourceLang
	if source == "" || source == models.AutoDetect {
		source = "autodetect"
	}

	params := url.Values{}
	params.Set("q", req.Text)
	params.Set("langpair", source+"|"+req.TargetLang)
	if c.email != "" {
		params.Set("de", c.email)
	}
	apiURL := strings.TrimSuffix(c.baseURL, "/") + "/get?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call MyMemory API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("MyMemory API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// responseStatus is sometimes a number and sometimes a quoted number.
	var apiResp struct {
		ResponseData *struct {
			TranslatedText   *string `json:"translatedText"`
			DetectedLanguage string  `json:"detectedLanguage"`
		} `json:"responseData"`
		ResponseStatus  json.Number `json:"responseStatus"`
		ResponseDetails string      `json:"responseDetails"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode MyMemory response: %w", err)
	}

	if status := apiResp.ResponseStatus.String(); status != "" && status != "200" {
		return nil, fmt.Errorf("MyMemory API error: %s (%s)", apiResp.ResponseDetails, status)
	}
	if apiResp.ResponseData == nil || apiResp.ResponseData.TranslatedText == nil {
		c.logger.Debug("MyMemory response has no translatedText")
		return nil, ErrUnexpectedResponse
	}

	out := &Translation{Text: *apiResp.ResponseData.TranslatedText}
	if source == "autodetect" {
		out.DetectedSourceLang = apiResp.ResponseData.DetectedLanguage
	}
	return out, nil
}

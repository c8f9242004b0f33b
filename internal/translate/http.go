package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const defaultHTTPTimeout = 30 * time.Second

// UpstreamError reports a non-2xx response from the translation endpoint.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("translate: upstream status %d: %s", e.Status, body)
}

// HTTPTranslatorOption configures the HTTP client.
type HTTPTranslatorOption func(*HTTPTranslator)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPTranslatorOption {
	return func(t *HTTPTranslator) {
		if client != nil {
			t.client = client
		}
	}
}

// WithAPIKey sets the api_key field sent with every request.
func WithAPIKey(key string) HTTPTranslatorOption {
	return func(t *HTTPTranslator) {
		t.apiKey = key
	}
}

// HTTPTranslator talks to a LibreTranslate-compatible endpoint.
type HTTPTranslator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPTranslator constructs a translator for the given endpoint, typically
// the /translate route of a LibreTranslate deployment.
func NewHTTPTranslator(endpoint string, opts ...HTTPTranslatorOption) *HTTPTranslator {
	t := &HTTPTranslator{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate implements interfaces.Translator.
func (t *HTTPTranslator) Translate(ctx context.Context, req interfaces.TranslateRequest) (string, error) {
	if t.endpoint == "" {
		return "", interfaces.ErrTranslatorUnavailable
	}

	source := req.SourceLocale
	if source == "" {
		source = interfaces.SourceLocaleAuto
	}
	format := string(req.Format)
	if format == "" {
		format = string(interfaces.TranslationFormatText)
	}

	body := map[string]any{
		"q":      req.Text,
		"source": source,
		"target": req.TargetLocale,
		"format": format,
	}
	if t.apiKey != "" {
		body["api_key"] = t.apiKey
	}

	respBody, err := t.doJSONRequest(ctx, body)
	if err != nil {
		return "", err
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("translate: decode response: %w", err)
	}
	if strings.TrimSpace(result.TranslatedText) == "" {
		return "", fmt.Errorf("translate: empty translation returned")
	}
	return result.TranslatedText, nil
}

func (t *HTTPTranslator) doJSONRequest(ctx context.Context, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("translate: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("translate: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate: http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("translate: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

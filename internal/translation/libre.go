package translation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the public LibreTranslate instance used when no
	// endpoint is configured. It does not require an API key for light usage.
	DefaultEndpoint = "https://libretranslate.de/translate"
	// DefaultTimeout bounds one outbound translation call.
	DefaultTimeout = 15 * time.Second

	// maxErrorBodyChars caps how much of a provider error body reaches the caller.
	maxErrorBodyChars = 200
)

// LibreProvider translates text by calling a LibreTranslate-compatible
// endpoint. One synchronous attempt per request, no retries.
type LibreProvider struct {
	endpoint string
	client   *http.Client
}

// NewLibreProvider builds a provider for the given endpoint. Empty endpoint
// and non-positive timeout fall back to the defaults.
func NewLibreProvider(endpoint string, timeout time.Duration) *LibreProvider {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LibreProvider{
		endpoint: trimmed,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *LibreProvider) Name() string {
	return "libretranslate"
}

// Translate sends one form-encoded request to the provider and maps the
// outcome onto the failure taxonomy. Timeout, error-status and malformed-body
// conditions are checked as separate branches so a slow provider can never be
// misfiled as an internal error.
func (p *LibreProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, &Error{Kind: KindInternal, Detail: "translation provider is nil"}
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, &Error{Kind: KindInvalidInput, Detail: "Text cannot be empty"}
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "auto"
	}

	form := url.Values{}
	form.Set("q", req.Text)
	form.Set("source", source)
	form.Set("target", req.Target)
	form.Set("format", "text")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Kind: KindInternal, Detail: err.Error(), Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, &Error{Kind: KindGatewayTimeout, Detail: "Translation service timeout", Cause: err}
		}
		return nil, &Error{Kind: KindInternal, Detail: err.Error(), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// The deadline can also fire mid-body.
		if isTimeout(err) {
			return nil, &Error{Kind: KindGatewayTimeout, Detail: "Translation service timeout", Cause: err}
		}
		return nil, &Error{Kind: KindInternal, Detail: err.Error(), Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:   KindBadGateway,
			Detail: "Translation service error: " + truncateChars(string(body), maxErrorBodyChars),
		}
	}

	var parsed libreResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{
			Kind:   KindBadGateway,
			Detail: "Invalid response from translation service",
			Cause:  err,
		}
	}
	if parsed.TranslatedText == "" {
		return nil, &Error{Kind: KindBadGateway, Detail: "Invalid response from translation service"}
	}

	return &Result{Translated: parsed.TranslatedText}, nil
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncateChars(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Package predictor talks to the external anomaly-detection service.
package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/go-resty/resty/v2"
)

// Error is a failure to obtain a usable response from the predictor.
// Error() renders the message shown to API clients.
type Error struct {
	Kind    model.FailureKind
	Status  int
	Body    string
	BaseURL string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case model.FailureUpstreamClient:
		return fmt.Sprintf("Erreur du service IA (HTTP %d): %s", e.Status, e.Body)
	case model.FailureUpstreamServer:
		return fmt.Sprintf("Erreur serveur IA (HTTP %d): %s", e.Status, e.Body)
	case model.FailureTransport:
		return fmt.Sprintf("Impossible de se connecter au service IA (%s): %v", e.BaseURL, e.Err)
	default:
		return fmt.Sprintf("Erreur lors de la prédiction IA: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Client is an HTTP client for the predictor. It never retries.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a predictor client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: c, baseURL: baseURL}
}

// BaseURL returns the configured predictor base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Predict posts req to /predict and returns the decoded JSON object.
// Non-2xx statuses and transport failures are returned as *Error.
func (c *Client) Predict(ctx context.Context, req model.PredictionRequest) (map[string]any, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/predict")
	if err != nil {
		slog.Warn("predictor unreachable", "url", c.baseURL, "error", err)
		return nil, &Error{Kind: model.FailureTransport, BaseURL: c.baseURL, Err: err}
	}

	status := resp.StatusCode()
	switch {
	case status >= 400 && status < 500:
		slog.Warn("predictor rejected request", "status", status)
		return nil, &Error{Kind: model.FailureUpstreamClient, Status: status, Body: resp.String()}
	case status >= 500:
		slog.Warn("predictor failed", "status", status)
		return nil, &Error{Kind: model.FailureUpstreamServer, Status: status, Body: resp.String()}
	case status < 200 || status >= 300:
		return nil, &Error{Kind: model.FailureUnexpected, Err: fmt.Errorf("unexpected status %d", status)}
	}

	var raw map[string]any
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, &Error{Kind: model.FailureUnexpected, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if raw == nil {
		return nil, &Error{Kind: model.FailureUnexpected, Err: fmt.Errorf("empty response body")}
	}

	return raw, nil
}

// Health reports whether GET /health answers with a 2xx status.
func (c *Client) Health(ctx context.Context) bool {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		slog.Debug("predictor health probe failed", "error", err)
		return false
	}
	return resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices
}

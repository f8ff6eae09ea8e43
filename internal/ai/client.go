package ai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Options selects and configures the generation backend
type Options struct {
	Backend string // BackendHosted or BackendLocal
	BaseURL string
	APIKey  string
	Model   string

	// HTTPClient overrides the default client, mainly for tests
	HTTPClient *http.Client
}

// Client streams generations from one backend. The wire framing is chosen
// once, at construction, by the backend variant.
type Client struct {
	variant    variant
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new generation client with proper timeouts
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		// No overall Timeout: it would cut off long streams. Callers bound the
		// whole generation with a context deadline instead.
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = 60 * time.Second
		httpClient = &http.Client{Transport: transport}
	}

	var v variant
	switch opts.Backend {
	case BackendHosted, "":
		if opts.APIKey == "" {
			return nil, NewValidationError("api_key", "required for the hosted backend")
		}
		model := opts.Model
		if model == "" {
			model = DefaultHostedModel
		}
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = DefaultHostedBaseURL
		}
		v = newHostedVariant(baseURL, opts.APIKey, model, httpClient)
		opts.Model = model
	case BackendLocal:
		model := opts.Model
		if model == "" {
			model = DefaultLocalModel
		}
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = DefaultLocalBaseURL
		}
		v = newLocalVariant(baseURL, model, httpClient)
		opts.Model = model
	default:
		return nil, NewValidationError("backend", fmt.Sprintf("unknown backend %q", opts.Backend))
	}

	return &Client{
		variant:    v,
		model:      opts.Model,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Backend returns the variant name, "hosted" or "local"
func (c *Client) Backend() string {
	return c.variant.name()
}

// Generate opens a streamed generation for req
func (c *Client) Generate(ctx context.Context, req Request) (FragmentStream, error) {
	if strings.TrimSpace(req.UserContent) == "" {
		return nil, NewValidationError("prompt", "cannot be empty")
	}
	if req.SystemInstructions == "" {
		return nil, NewValidationError("system_instructions", "cannot be empty")
	}

	c.logger.InfoContext(ctx, "sending generation request",
		"backend", c.variant.name(),
		"model", c.model,
		"prompt_length", len(req.UserContent))

	httpReq, err := c.variant.newRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.ErrorContext(ctx, "generation request failed",
			"backend", c.variant.name(),
			"error", err)
		return nil, NewBackendUnavailableError(c.variant.name(), 0, "request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		c.logger.ErrorContext(ctx, "generation backend error",
			"backend", c.variant.name(),
			"status_code", resp.StatusCode,
			"response_body", string(body))
		return nil, NewBackendUnavailableError(c.variant.name(), resp.StatusCode, strings.TrimSpace(string(body)), nil)
	}

	return newStream(ctx, resp.Body, c.variant, c.logger), nil
}

// Probe checks connectivity with a tiny non-streamed request
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := c.variant.probe(ctx); err != nil {
		return NewBackendUnavailableError(c.variant.name(), 0, "connectivity probe failed", err)
	}

	c.logger.InfoContext(ctx, "generation backend reachable",
		"backend", c.variant.name(),
		"model", c.model)
	return nil
}

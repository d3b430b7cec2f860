// Package braintree implements the thin HTTP wrapper around the Braintree
// GraphQL API. Every tool invocation maps to exactly one outbound POST; the
// response body is relayed to the caller unmodified. There is deliberately
// no retry or backoff here.
package braintree

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"braintree-mcp/internal/config"
	"braintree-mcp/pkg/logging"

	"github.com/google/uuid"
)

// userAgent identifies the bridge to Braintree on every request.
const userAgent = "braintree-mcp/1.0"

// maxLoggedQueryLength bounds how much of a query ends up in debug logs.
const maxLoggedQueryLength = 100

// Request is a GraphQL request exactly as the caller supplied it. Variables
// are omitted from the wire body when nil so the upstream sees the same
// fields the caller sent.
type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// Client issues authenticated GraphQL requests against a single fixed
// Braintree endpoint. It is safe for concurrent use; all fields are set at
// construction and never mutated.
type Client struct {
	endpoint   string
	apiVersion string
	authHeader string
	httpClient *http.Client
}

// NewClient builds a client from the startup configuration. Authentication
// follows Braintree's documented scheme: Basic with base64(public:private).
func NewClient(cfg config.Config) *Client {
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.PublicKey + ":" + cfg.PrivateKey))
	return &Client{
		endpoint:   cfg.Endpoint(),
		apiVersion: cfg.APIVersion,
		authHeader: "Basic " + creds,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Execute posts the request to Braintree and returns the response body
// unmodified. Transport failures and non-2xx statuses surface as a single
// generic error; GraphQL errors embedded in a 2xx body are the caller's to
// interpret. A 2xx body that is not valid JSON is still returned as-is.
func (c *Client) Execute(ctx context.Context, request Request) (json.RawMessage, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Braintree-Version", c.apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	requestID := uuid.NewString()
	logging.Debug("Braintree", "Sending request %s: %s", requestID, truncateQuery(request.Query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Error("Braintree", err, "Request %s failed", requestID)
		return nil, fmt.Errorf("request to Braintree failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Braintree response: %w", err)
	}

	logging.Debug("Braintree", "Request %s completed with status %d", requestID, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Braintree returned status %d", resp.StatusCode)
	}

	if !json.Valid(respBody) {
		// Pass-through contract: the caller gets exactly what Braintree sent.
		logging.Warn("Braintree", "Request %s returned a non-JSON body (%d bytes)", requestID, len(respBody))
	}

	return respBody, nil
}

// truncateQuery shortens a query string for log output.
func truncateQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > maxLoggedQueryLength {
		return query[:maxLoggedQueryLength] + "..."
	}
	return query
}

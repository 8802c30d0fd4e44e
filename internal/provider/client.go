// Package provider wraps the ride provider's private web API. The GraphQL
// wire contract is treated as opaque: operations and payload shapes mirror
// what the rider web app sends, nothing more.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ridereport/internal/domain"
)

const graphqlPath = "/graphql"

// Client issues authenticated calls against the provider API. Every call
// takes the caller's credential explicitly; the client holds no session
// state of its own.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL exposes the configured provider origin for URL construction.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type gqlRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// postGraphQL sends one operation and decodes the response envelope into out.
func (c *Client) postGraphQL(ctx context.Context, cred domain.Credential, op string, variables map[string]any, out any) error {
	if !cred.Valid() {
		return domain.ValidationError{Field: "credential", Msg: "missing session credential"}
	}

	body, err := json.Marshal(gqlRequest{OperationName: op, Variables: variables})
	if err != nil {
		return domain.InternalError{Msg: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+graphqlPath, bytes.NewReader(body))
	if err != nil {
		return domain.InternalError{Msg: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	applyCredential(req, cred)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.UpstreamError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// FetchBinary downloads one document using the caller's session credential.
func (c *Client) FetchBinary(ctx context.Context, cred domain.Credential, url string) ([]byte, error) {
	if !cred.Valid() {
		return nil, domain.ValidationError{Field: "credential", Msg: "missing session credential"}
	}
	if url == "" {
		return nil, domain.ValidationError{Field: "url", Msg: "missing document url"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.InternalError{Msg: "build request", Err: err}
	}
	applyCredential(req, cred)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Op: "fetchBinary", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.UpstreamError{Op: "fetchBinary", Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamError{Op: "fetchBinary", Err: err}
	}
	return data, nil
}

func applyCredential(req *http.Request, cred domain.Credential) {
	req.Header.Set("Cookie", cred.SessionCookie)
	req.Header.Set("X-Csrf-Token", cred.CSRFToken)
}

// Package esign provides the client for the external e-signature provider.
package esign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Signer is a recipient of a signature request.
type Signer struct {
	Role         string `json:"role"`
	Name         string `json:"name"`
	EmailAddress string `json:"email_address"`
}

// SendRequest is the payload for creating a template-based signature request.
type SendRequest struct {
	TemplateID   string            `json:"template_id"`
	Subject      string            `json:"subject,omitempty"`
	Message      string            `json:"message,omitempty"`
	Signers      []Signer          `json:"signers"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	TestMode     bool              `json:"test_mode"`
}

// SignatureRequest is the provider's view of a created signature request.
type SignatureRequest struct {
	SignatureRequestID string `json:"signature_request_id"`
	Title              string `json:"title"`
	IsComplete         bool   `json:"is_complete"`
}

// FileURL points at the combined signed document for a signature request.
type FileURL struct {
	FileURL   string `json:"file_url"`
	ExpiresAt int64  `json:"expires_at"`
}

// ProviderError carries the provider's error response.
type ProviderError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("e-signature provider returned status %d: %s", e.StatusCode, e.Message)
}

// Provider defines the e-signature operations the service depends on.
type Provider interface {
	// SendWithTemplate creates a signature request from a provider template and
	// emails the signers.
	SendWithTemplate(ctx context.Context, request *SendRequest) (*SignatureRequest, error)
	// GetFileURL returns a short-lived URL for the signed PDF of a request.
	GetFileURL(ctx context.Context, signatureRequestID string) (*FileURL, error)
}

// Client is an HTTP implementation of Provider. The provider authenticates
// with the API key as the basic-auth username and an empty password.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an e-signature provider client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendWithTemplate creates a signature request from a provider template and
// emails the signers.
func (c *Client) SendWithTemplate(ctx context.Context, request *SendRequest) (*SignatureRequest, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal signature request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/signature_request/send_with_template", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create signature request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send signature request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, providerError(resp)
	}

	var envelope struct {
		SignatureRequest SignatureRequest `json:"signature_request"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode signature request response: %w", err)
	}

	return &envelope.SignatureRequest, nil
}

// GetFileURL returns a short-lived URL for the signed PDF of a request.
func (c *Client) GetFileURL(ctx context.Context, signatureRequestID string) (*FileURL, error) {
	endpoint := fmt.Sprintf(
		"%s/signature_request/files/%s?%s",
		c.baseURL,
		url.PathEscape(signatureRequestID),
		url.Values{"file_type": {"pdf"}, "get_url": {"true"}}.Encode(),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create file request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request signed file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, providerError(resp)
	}

	var fileURL FileURL
	if err := json.NewDecoder(resp.Body).Decode(&fileURL); err != nil {
		return nil, fmt.Errorf("failed to decode file response: %w", err)
	}

	return &fileURL, nil
}

func providerError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Error struct {
			ErrorMsg string `json:"error_msg"`
		} `json:"error"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.ErrorMsg != "" {
		message = envelope.Error.ErrorMsg
	}

	return &ProviderError{StatusCode: resp.StatusCode, Message: message}
}

// Package carrier provides the insurance carrier submission client.
// The carrier is the external system a fully signed application is transmitted
// to; a successful submission yields a transmission GUID.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SubmissionResult is the carrier's acknowledgement of a submitted application.
type SubmissionResult struct {
	TransmissionGUID string `json:"transmission_guid"`
	Message          string `json:"message"`
}

// SubmissionError indicates the carrier rejected or failed a submission.
// The message is surfaced to webhook response messages, so it must be
// human-readable.
type SubmissionError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *SubmissionError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("carrier submission failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("carrier submission failed: %s", e.Message)
}

// Submitter defines the carrier submission operation consumed by the
// signature event dispatcher.
type Submitter interface {
	// Submit authenticates against the carrier and transmits the application.
	Submit(ctx context.Context, quoteID uuid.UUID) (*SubmissionResult, error)
}

// Client is an HTTP implementation of Submitter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a carrier submission client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Submit authenticates against the carrier and transmits the application.
func (c *Client) Submit(ctx context.Context, quoteID uuid.UUID) (*SubmissionResult, error) {
	token, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"application_id": quoteID.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission payload: %w", err)
	}

	url := fmt.Sprintf("%s/applications/submit", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmissionError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var result SubmissionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Message: "invalid carrier response: " + err.Error()}
	}

	return &result, nil
}

// authenticate exchanges the API key for a short-lived bearer token.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{"api_key": c.apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth payload: %w", err)
	}

	url := fmt.Sprintf("%s/auth/token", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &SubmissionError{Message: "carrier authentication: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &SubmissionError{StatusCode: resp.StatusCode, Message: "carrier authentication: " + string(body)}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Message: "invalid auth response: " + err.Error()}
	}

	return tokenResp.AccessToken, nil
}

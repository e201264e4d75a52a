package dto

import "github.com/enrollhq/signflow/internal/esign"

// EventCallbackResponse is returned by the webhook endpoint.
type EventCallbackResponse struct {
	Message  string   `json:"message"`
	Messages []string `json:"messages,omitempty"`
}

// SignatureRequestResponse represents a created signing request in API responses.
type SignatureRequestResponse struct {
	SignatureRequestID string `json:"signature_request_id"`
	Title              string `json:"title"`
	IsComplete         bool   `json:"is_complete"`
}

// MapSignatureRequestToResponse converts a provider signature request to an
// API response.
func MapSignatureRequestToResponse(request *esign.SignatureRequest) SignatureRequestResponse {
	return SignatureRequestResponse{
		SignatureRequestID: request.SignatureRequestID,
		Title:              request.Title,
		IsComplete:         request.IsComplete,
	}
}

// FileURLResponse represents a signed-file download URL in API responses.
type FileURLResponse struct {
	FileURL   string `json:"file_url"`
	ExpiresAt int64  `json:"expires_at"`
}

// MapFileURLToResponse converts a provider file URL to an API response.
func MapFileURLToResponse(fileURL *esign.FileURL) FileURLResponse {
	return FileURLResponse{
		FileURL:   fileURL.FileURL,
		ExpiresAt: fileURL.ExpiresAt,
	}
}

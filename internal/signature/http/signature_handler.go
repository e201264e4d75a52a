// Package http provides HTTP handlers for the signature workflow: the
// provider callback endpoint plus the outbound signing-request and
// file-download operations.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/httputil"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
	"github.com/enrollhq/signflow/internal/signature/http/dto"
	signatureUseCase "github.com/enrollhq/signflow/internal/signature/usecase"
	customValidation "github.com/enrollhq/signflow/internal/validation"
)

// Fixed webhook response messages. The provider inspects only the status code,
// but operators read these when replaying failed deliveries.
const (
	eventReceivedMessage = "E-signature event received"
	unparseableMessage   = "Unable to parse json due to incompatible formatting of request body"
	invalidEventMessage  = "Unable to validate event. All events sent to this callback in production mode must be from the e-signature provider."
	multipartEventField  = "json"
)

// SignatureHandler handles HTTP requests for the signature workflow.
type SignatureHandler struct {
	signatureUseCase signatureUseCase.SignatureUseCase
	logger           *slog.Logger
}

// NewSignatureHandler creates a new signature handler with required dependencies.
func NewSignatureHandler(useCase signatureUseCase.SignatureUseCase, logger *slog.Logger) *SignatureHandler {
	return &SignatureHandler{
		signatureUseCase: useCase,
		logger:           logger,
	}
}

// EventCallbackHandler receives provider callback events.
// POST /v1/esignature/events - no authentication beyond the event hash.
// The provider posts a multipart form with the event JSON in the "json"
// field; raw JSON bodies are accepted as well for manual replays.
// Returns 201 Created on accepted processing (business failures included)
// or 400 Bad Request on malformed JSON / a failed authenticity check in
// production.
func (h *SignatureHandler) EventCallbackHandler(c *gin.Context) {
	event, ok := h.parseEvent(c)
	if !ok {
		h.logger.Error("event callback error, unable to parse request body")
		c.JSON(http.StatusBadRequest, dto.EventCallbackResponse{Message: unparseableMessage})
		return
	}

	result := h.signatureUseCase.HandleEvent(c.Request.Context(), event)
	if result.Outcome == signatureDomain.OutcomeRejected {
		h.logger.Error("unable to validate event, invalid event data sent to callback in production mode")
		c.JSON(http.StatusBadRequest, dto.EventCallbackResponse{Message: invalidEventMessage})
		return
	}

	c.JSON(http.StatusCreated, dto.EventCallbackResponse{
		Message:  eventReceivedMessage,
		Messages: result.Messages,
	})
}

// parseEvent extracts the event envelope from the multipart "json" field or
// the raw request body.
func (h *SignatureHandler) parseEvent(c *gin.Context) (*signatureDomain.InboundEvent, bool) {
	payload := []byte(c.PostForm(multipartEventField))
	if len(payload) == 0 {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, false
		}
		payload = body
	}

	var event signatureDomain.InboundEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, false
	}

	return &event, true
}

// SendRequestHandler creates a template-based signing request.
// POST /v1/esignature/requests
// Returns 201 Created with the provider's signature request.
func (h *SignatureHandler) SendRequestHandler(c *gin.Context) {
	var req dto.SendSignatureRequestRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.signatureUseCase.SendSignatureRequest(c.Request.Context(), req.ToSendRequest())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSignatureRequestToResponse(result))
}

// DownloadFileHandler returns a short-lived URL for the employer's signed
// application PDF.
// GET /v1/esignature/files/:employerId
// Returns 200 OK with the file URL.
func (h *SignatureHandler) DownloadFileHandler(c *gin.Context) {
	employerID, err := uuid.Parse(c.Param("employerId"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("employerId must be a valid UUID: %w", err),
			h.logger,
		)
		return
	}

	fileURL, err := h.signatureUseCase.DownloadFile(c.Request.Context(), employerID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFileURLToResponse(fileURL))
}

// Package dto provides data transfer objects for the signature workflow HTTP API.
package dto

import (
	"fmt"

	validation "github.com/jellydator/validation"

	"github.com/enrollhq/signflow/internal/esign"
	customValidation "github.com/enrollhq/signflow/internal/validation"
)

// SignerRequest identifies one recipient of a signing request.
type SignerRequest struct {
	Role         string `json:"role"`
	Name         string `json:"name"`
	EmailAddress string `json:"email_address"`
}

// Validate checks if the signer is valid.
func (r *SignerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&r.EmailAddress, validation.Required, customValidation.Email),
	)
}

// SendSignatureRequestRequest contains the parameters for creating a
// template-based signing request.
type SendSignatureRequestRequest struct {
	TemplateID   string            `json:"template_id"`
	Subject      string            `json:"subject"`
	Message      string            `json:"message"`
	Signers      []SignerRequest   `json:"signers"`
	Metadata     map[string]string `json:"metadata"`
	CustomFields map[string]string `json:"custom_fields"`
	TestMode     bool              `json:"test_mode"`
}

// Validate checks if the send signature request is valid.
func (r *SendSignatureRequestRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.TemplateID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Signers, validation.Required, validation.Length(1, 0)),
	)
	if err != nil {
		return err
	}

	for i := range r.Signers {
		if err := r.Signers[i].Validate(); err != nil {
			return fmt.Errorf("signers[%d]: %w", i, err)
		}
	}

	return nil
}

// ToSendRequest converts the request to the e-signature provider payload.
func (r *SendSignatureRequestRequest) ToSendRequest() *esign.SendRequest {
	signers := make([]esign.Signer, 0, len(r.Signers))
	for _, signer := range r.Signers {
		signers = append(signers, esign.Signer{
			Role:         signer.Role,
			Name:         signer.Name,
			EmailAddress: signer.EmailAddress,
		})
	}

	return &esign.SendRequest{
		TemplateID:   r.TemplateID,
		Subject:      r.Subject,
		Message:      r.Message,
		Signers:      signers,
		Metadata:     r.Metadata,
		CustomFields: r.CustomFields,
		TestMode:     r.TestMode,
	}
}

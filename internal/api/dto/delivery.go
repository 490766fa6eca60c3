package dto

type ConfirmDeliveryRequest struct {
	Notes *string `json:"notes"`
	// Signature image as a data URI. Whether it is required is a
	// deployment policy, enforced by the handler.
	Signature string `json:"signature" validate:"omitempty,startswith=data:image/"`
}

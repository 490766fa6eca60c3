package ports

import "context"

const (
	EventPackageReceived  = "package.received"
	EventPackageDelivered = "package.delivered"
)

// Payload posted to the external notification endpoint.
type WebhookEvent struct {
	Kind            string  `json:"event"`
	DeliveryCompany string  `json:"delivery_company"`
	StoreName       string  `json:"store_name"`
	ResidentID      *string `json:"resident_id"`
	PackageID       string  `json:"package_id"`
}

// Port: delivery of webhook notifications to the external endpoint.
// The endpoint is unrelated to this service's own correctness; callers
// decide whether a failure matters.
type WebhookNotifier interface {
	Notify(ctx context.Context, event WebhookEvent) error
}

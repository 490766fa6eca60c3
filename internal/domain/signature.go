package domain

import "time"

// A captured proof-of-receipt image, stored as a data URI.
// Created once per delivery confirmation and immutable afterwards.
// A signature left unreferenced by a failed confirmation is inert.
type Signature struct {
	ID        string
	ImageData string
	CreatedAt time.Time
}

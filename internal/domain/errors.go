package domain

import "errors"

var (
	// No package carries the scanned code. A neutral outcome, distinct
	// from a transport failure.
	ErrPackageNotFound = errors.New("package not found")

	// The package already went through delivery confirmation.
	ErrAlreadyDelivered = errors.New("package already delivered")

	// The scanned package is not part of the expected pending set.
	ErrNotInPendingSet = errors.New("scanned package not part of the list")

	// The scan region is missing or already bound to an active session.
	ErrScannerInit = errors.New("scanner initialization failed")

	// Decode events arrived for a session that is not scanning.
	ErrSessionNotScanning = errors.New("scan session is not active")
)

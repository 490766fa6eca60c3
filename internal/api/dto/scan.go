package dto

type StartScanRequest struct {
	RegionID string `json:"region_id" validate:"required"`
}

type ScanSessionResponse struct {
	SessionID       string `json:"session_id,omitempty"`
	RegionID        string `json:"region_id,omitempty"`
	Scanning        bool   `json:"scanning"`
	FramesPerSecond int    `json:"fps,omitempty"`
	DetectionBoxPx  int    `json:"detection_box_px,omitempty"`
}

// One event from the client-side decoder: either decoded text or a
// decoder error kind ("no_code" for empty frames).
type DecodeEventRequest struct {
	Text    string `json:"text"`
	ErrKind string `json:"error"`
}

type DecodeOutcomeResponse struct {
	Accepted bool             `json:"accepted"`
	Package  *PackageResponse `json:"package,omitempty"`
	Verified *bool            `json:"verified,omitempty"`
}

type ArmVerificationRequest struct {
	PendingIDs []string `json:"pending_ids" validate:"required,min=1"`
}

type VerificationStateResponse struct {
	VerifiedIDs []string `json:"verified_ids"`
	Remaining   int      `json:"remaining"`
}

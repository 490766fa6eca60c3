package scanner

import (
	"condo-package-service/internal/domain"
	"fmt"
	"sync"
	"time"
)

// Decoder error kind for frames with no code in view. This is a normal,
// continuous condition while nothing is held up to the camera and is
// suppressed instead of surfaced.
const ErrKindNoCode = "no_code"

// A decode event reported by a client-side decoder. Exactly one of Text
// or ErrKind is set.
type DecodeEvent struct {
	Text    string
	ErrKind string
}

// Outcome of pushing a decode event through a session.
type DecodeResult struct {
	Code     string
	Accepted bool
}

// Best-effort feedback on an accepted decode (the audio/haptic cue of
// the scan screen). Failures are swallowed by the session.
type CueNotifier interface {
	DecodeAccepted(sessionID string) error
}

type noopCue struct{}

func (noopCue) DecodeAccepted(string) error { return nil }

// Session holds the transient state of one scan run bound to a display
// region: whether it is scanning, the last accepted code, and the last
// decoder error. Destroyed when the operator leaves the scan screen.
type Session struct {
	ID       string
	RegionID string

	mu         sync.Mutex
	scanning   bool
	lastCode   string
	lastCodeAt time.Time
	lastErr    string

	debounce time.Duration
	cue      CueNotifier

	verification *VerificationRun
}

// Push feeds one decode event through the session pipeline:
// noise filter, debounce window, cue.
//
// Empty-frame errors are dropped silently. Repeated detections of the
// same code inside the debounce window are dropped so a code held in
// front of the camera does not re-trigger downstream lookups.
func (s *Session) Push(ev DecodeEvent, now time.Time) (DecodeResult, error) {
	res, err := s.push(ev, now)
	if res.Accepted {
		// Cosmetic feedback only; a broken speaker must not break
		// scanning, and a slow one must not hold up the next push.
		_ = s.cue.DecodeAccepted(s.ID)
	}
	return res, err
}

func (s *Session) push(ev DecodeEvent, now time.Time) (DecodeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanning {
		return DecodeResult{}, fmt.Errorf("session %s: %w", s.ID, domain.ErrSessionNotScanning)
	}

	if ev.ErrKind != "" {
		if ev.ErrKind == ErrKindNoCode {
			return DecodeResult{}, nil
		}
		s.lastErr = ev.ErrKind
		return DecodeResult{}, fmt.Errorf("session %s: decoder reported %q", s.ID, ev.ErrKind)
	}

	if ev.Text == "" {
		return DecodeResult{}, fmt.Errorf("session %s: decode event carries no text", s.ID)
	}

	if ev.Text == s.lastCode && now.Sub(s.lastCodeAt) < s.debounce {
		return DecodeResult{Code: ev.Text}, nil
	}

	s.lastCode = ev.Text
	s.lastCodeAt = now
	s.lastErr = ""

	return DecodeResult{Code: ev.Text, Accepted: true}, nil
}

// ArmVerification switches the session into restricted-scan mode
// against the supplied pending set. Re-arming replaces the run.
func (s *Session) ArmVerification(pendingIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verification = NewVerificationRun(pendingIDs)
}

// Verification returns the active run, or nil when the session scans
// unrestricted.
func (s *Session) Verification() *VerificationRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verification
}

func (s *Session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanning = false
}

// Scanning reports whether the decode loop is live.
func (s *Session) Scanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanning
}

// LastError returns the most recent surfaced decoder error kind.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

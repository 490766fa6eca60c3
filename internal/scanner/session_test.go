package scanner

import (
	"condo-package-service/internal/domain"
	"errors"
	"testing"
	"time"
)

type recordingCue struct {
	calls int
	err   error
}

func (c *recordingCue) DecodeAccepted(string) error {
	c.calls++
	return c.err
}

func newTestSession(cue CueNotifier) *Session {
	if cue == nil {
		cue = noopCue{}
	}
	return &Session{
		ID:       "s1",
		RegionID: "reader",
		scanning: true,
		debounce: 2 * time.Second,
		cue:      cue,
	}
}

func TestSessionPushAcceptsDecode(t *testing.T) {
	cue := &recordingCue{}
	s := newTestSession(cue)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	result, err := s.Push(DecodeEvent{Text: "QR-1001"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Accepted || result.Code != "QR-1001" {
		t.Fatalf("result = %+v, want accepted QR-1001", result)
	}
	if cue.calls != 1 {
		t.Fatalf("cue calls = %d, want 1", cue.calls)
	}
}

func TestSessionPushDebouncesRepeats(t *testing.T) {
	s := newTestSession(nil)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	if _, err := s.Push(DecodeEvent{Text: "QR-1001"}, now); err != nil {
		t.Fatalf("first push: %v", err)
	}

	// Same code inside the window is dropped silently.
	result, err := s.Push(DecodeEvent{Text: "QR-1001"}, now.Add(500*time.Millisecond))
	if err != nil {
		t.Fatalf("second push: %v", err)
	}
	if result.Accepted {
		t.Fatal("repeat inside debounce window was accepted")
	}

	// A different code passes immediately.
	result, err = s.Push(DecodeEvent{Text: "QR-1002"}, now.Add(600*time.Millisecond))
	if err != nil || !result.Accepted {
		t.Fatalf("different code: accepted=%v err=%v", result.Accepted, err)
	}

	// The first code passes again once the window elapses.
	result, err = s.Push(DecodeEvent{Text: "QR-1001"}, now.Add(10*time.Second))
	if err != nil || !result.Accepted {
		t.Fatalf("expired window: accepted=%v err=%v", result.Accepted, err)
	}
}

func TestSessionPushSuppressesEmptyFrameNoise(t *testing.T) {
	cue := &recordingCue{}
	s := newTestSession(cue)

	result, err := s.Push(DecodeEvent{ErrKind: ErrKindNoCode}, time.Now())
	if err != nil {
		t.Fatalf("noise surfaced: %v", err)
	}
	if result.Accepted {
		t.Fatal("noise event was accepted")
	}
	if cue.calls != 0 {
		t.Fatal("cue fired for a noise event")
	}
	if s.LastError() != "" {
		t.Fatalf("last error = %q, want empty", s.LastError())
	}
}

func TestSessionPushSurfacesRealDecodeErrors(t *testing.T) {
	s := newTestSession(nil)

	_, err := s.Push(DecodeEvent{ErrKind: "camera_lost"}, time.Now())
	if err == nil {
		t.Fatal("expected decode error to surface")
	}
	if s.LastError() != "camera_lost" {
		t.Fatalf("last error = %q, want camera_lost", s.LastError())
	}
}

func TestSessionPushCueFailureIsSwallowed(t *testing.T) {
	cue := &recordingCue{err: errors.New("speaker broken")}
	s := newTestSession(cue)

	result, err := s.Push(DecodeEvent{Text: "QR-1001"}, time.Now())
	if err != nil {
		t.Fatalf("cue failure propagated: %v", err)
	}
	if !result.Accepted {
		t.Fatal("decode rejected because of cue failure")
	}
}

// A cue implementation that reads session state back must not deadlock:
// the cue fires after the session releases its lock.
type reentrantCue struct {
	session  *Session
	scanning bool
}

func (c *reentrantCue) DecodeAccepted(string) error {
	c.scanning = c.session.Scanning()
	return nil
}

func TestSessionPushCueRunsOutsideLock(t *testing.T) {
	cue := &reentrantCue{}
	s := newTestSession(cue)
	cue.session = s
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.Push(DecodeEvent{Text: "QR-1001"}, now); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("push deadlocked on a session-reading cue")
	}
	if !cue.scanning {
		t.Fatal("cue observed a stopped session")
	}
}

func TestSessionPushAfterStop(t *testing.T) {
	s := newTestSession(nil)
	s.stop()

	_, err := s.Push(DecodeEvent{Text: "QR-1001"}, time.Now())
	if !errors.Is(err, domain.ErrSessionNotScanning) {
		t.Fatalf("err = %v, want ErrSessionNotScanning", err)
	}
}

package scanner

import (
	"condo-package-service/internal/domain"
	"errors"
	"testing"
)

func TestManagerStartAcquiresRegionExclusively(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)

	first, err := m.Start("front-desk")
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if !first.Scanning() {
		t.Fatal("session not scanning after start")
	}

	// The camera is a single handle; a second start on the same region
	// must fail until the first session releases it.
	_, err = m.Start("front-desk")
	if !errors.Is(err, domain.ErrScannerInit) {
		t.Fatalf("double start err = %v, want ErrScannerInit", err)
	}

	m.Stop(first.ID)
	if first.Scanning() {
		t.Fatal("session still scanning after stop")
	}

	if _, err := m.Start("front-desk"); err != nil {
		t.Fatalf("restart after stop: %v", err)
	}
}

func TestManagerStartRejectsEmptyRegion(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)

	_, err := m.Start("   ")
	if !errors.Is(err, domain.ErrScannerInit) {
		t.Fatalf("err = %v, want ErrScannerInit", err)
	}
}

func TestManagerStopIsIdempotent(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)

	s, err := m.Start("front-desk")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	m.Stop(s.ID)
	m.Stop(s.ID)
	m.Stop("never-existed")
}

func TestManagerToggle(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)

	started, err := m.Toggle("front-desk")
	if err != nil {
		t.Fatalf("toggle start: %v", err)
	}
	if started == nil || !started.Scanning() {
		t.Fatal("toggle did not start a session")
	}

	stopped, err := m.Toggle("front-desk")
	if err != nil {
		t.Fatalf("toggle stop: %v", err)
	}
	if stopped != nil {
		t.Fatal("toggle on a live region returned a new session")
	}
	if started.Scanning() {
		t.Fatal("toggle did not stop the live session")
	}
}

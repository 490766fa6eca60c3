package scanner

import (
	"condo-package-service/internal/domain"
	"errors"
	"testing"
)

func TestVerificationRunVerify(t *testing.T) {
	run := NewVerificationRun([]string{"p1", "p2", "p3"})

	if err := run.Verify("p2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := run.Verified()
	if len(got) != 1 || got[0] != "p2" {
		t.Fatalf("verified = %v, want [p2]", got)
	}
	if run.Remaining() != 2 {
		t.Fatalf("remaining = %d, want 2", run.Remaining())
	}
}

func TestVerificationRunDeduplicatesRepeatScans(t *testing.T) {
	run := NewVerificationRun([]string{"p1"})

	if err := run.Verify("p1"); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := run.Verify("p1"); err != nil {
		t.Fatalf("repeat verify: %v", err)
	}

	if got := run.Verified(); len(got) != 1 {
		t.Fatalf("verified = %v, want exactly one entry", got)
	}
}

func TestVerificationRunRejectsUnexpectedPackage(t *testing.T) {
	run := NewVerificationRun([]string{"p1", "p2"})

	err := run.Verify("p9")
	if !errors.Is(err, domain.ErrNotInPendingSet) {
		t.Fatalf("err = %v, want ErrNotInPendingSet", err)
	}

	if got := run.Verified(); len(got) != 0 {
		t.Fatalf("accumulator mutated by rejected scan: %v", got)
	}
}

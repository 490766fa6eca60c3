package scanner

import (
	"condo-package-service/internal/domain"
	"fmt"
	"sync"
)

// VerificationRun cross-checks scanned packages against an
// operator-supplied set of expected package ids (bulk verification).
// The run is in-memory state for one scan session; persisting its
// outcome is the enclosing screen's concern.
type VerificationRun struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	verified map[string]struct{}
	order    []string
}

func NewVerificationRun(pendingIDs []string) *VerificationRun {
	pending := make(map[string]struct{}, len(pendingIDs))
	for _, id := range pendingIDs {
		pending[id] = struct{}{}
	}
	return &VerificationRun{
		pending:  pending,
		verified: make(map[string]struct{}),
	}
}

// Verify records packageID as verified when it belongs to the pending
// set. A set keeps repeated scans of the same package harmless. An id
// outside the set fails with domain.ErrNotInPendingSet and leaves the
// accumulator untouched.
func (r *VerificationRun) Verify(packageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pending[packageID]; !ok {
		return fmt.Errorf("verify package %s: %w", packageID, domain.ErrNotInPendingSet)
	}

	if _, seen := r.verified[packageID]; !seen {
		r.verified[packageID] = struct{}{}
		r.order = append(r.order, packageID)
	}

	return nil
}

// Verified returns the accumulated ids in scan order.
func (r *VerificationRun) Verified() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Remaining reports how many expected packages are still unverified.
func (r *VerificationRun) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending) - len(r.verified)
}

package services

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// In-memory PackageRepository fake shared by the service tests.
type memPackageRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Package
	failWith error

	getByCodeCalls int
	lastListLimit  int
}

func newMemPackageRepo(pkgs ...*domain.Package) *memPackageRepo {
	r := &memPackageRepo{byID: make(map[string]*domain.Package)}
	for _, p := range pkgs {
		cp := *p
		r.byID[p.ID] = &cp
	}
	return r
}

func (r *memPackageRepo) GetByCode(_ context.Context, code string) (*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getByCodeCalls++

	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, p := range r.byID {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get package by code %q: %w", code, domain.ErrPackageNotFound)
}

func (r *memPackageRepo) GetByID(_ context.Context, id string) (*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("get package %s: %w", id, domain.ErrPackageNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memPackageRepo) ListByStatus(_ context.Context, status domain.PackageStatus, limit int) ([]*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Package, 0)
	for _, p := range r.byID {
		if p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPackageRepo) ListRecentDeliveries(_ context.Context, limit int) ([]*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastListLimit = limit

	if r.failWith != nil {
		return nil, r.failWith
	}

	out := make([]*domain.Package, 0)
	for _, p := range r.byID {
		if p.Status == domain.StatusDelivered && p.DeliveredAt != nil {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveredAt.After(*out[j].DeliveredAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPackageRepo) Create(_ context.Context, p *domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memPackageRepo) MarkDelivered(_ context.Context, p *domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}
	stored, ok := r.byID[p.ID]
	if !ok {
		return fmt.Errorf("mark package %s delivered: %w", p.ID, domain.ErrPackageNotFound)
	}
	if stored.Status != domain.StatusPending {
		return fmt.Errorf("mark package %s delivered: %w", p.ID, domain.ErrAlreadyDelivered)
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memPackageRepo) stored(id string) *domain.Package {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

var _ ports.PackageRepository = (*memPackageRepo)(nil)

type memSignatureRepo struct {
	mu       sync.Mutex
	created  []*domain.Signature
	failWith error
}

func (r *memSignatureRepo) Create(_ context.Context, s *domain.Signature) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	cp := *s
	r.created = append(r.created, &cp)
	return nil
}

var _ ports.SignatureRepository = (*memSignatureRepo)(nil)

type fakeLookupCache struct {
	mu           sync.Mutex
	byCode       map[string]*domain.Package
	invalidated  []string
	getErr       error
	putCallCount int
}

func newFakeLookupCache() *fakeLookupCache {
	return &fakeLookupCache{byCode: make(map[string]*domain.Package)}
}

func (c *fakeLookupCache) GetPackage(_ context.Context, code string) (*domain.Package, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	p, ok := c.byCode[code]
	return p, ok, nil
}

func (c *fakeLookupCache) PutPackage(_ context.Context, code string, p *domain.Package) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putCallCount++
	c.byCode[code] = p
	return nil
}

func (c *fakeLookupCache) Invalidate(_ context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byCode, code)
	c.invalidated = append(c.invalidated, code)
	return nil
}

var _ ports.LookupCache = (*fakeLookupCache)(nil)

type fakeFeedCache struct {
	mu          sync.Mutex
	recent      []*domain.Package
	warm        bool
	invalidated int
}

func (c *fakeFeedCache) GetRecent(_ context.Context) ([]*domain.Package, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent, c.warm, nil
}

func (c *fakeFeedCache) PutRecent(_ context.Context, pkgs []*domain.Package) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent = pkgs
	c.warm = true
	return nil
}

func (c *fakeFeedCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent = nil
	c.warm = false
	c.invalidated++
	return nil
}

var _ ports.FeedCache = (*fakeFeedCache)(nil)

// Synchronous dispatcher fake recording every event.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []ports.WebhookEvent
}

func (d *recordingDispatcher) Dispatch(event ports.WebhookEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

var errTransport = errors.New("connection refused")

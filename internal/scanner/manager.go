package scanner

import (
	"condo-package-service/internal/domain"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Decoder settings handed back to the client on session start.
type Config struct {
	FramesPerSecond int
	DetectionBoxPx  int
	DebounceWindow  time.Duration
}

func DefaultConfig() Config {
	return Config{
		FramesPerSecond: 10,
		DetectionBoxPx:  250,
		DebounceWindow:  2 * time.Second,
	}
}

// Manager owns scan sessions and enforces exclusive use of each scan
// region: the camera is a single hardware handle, so at most one live
// session may be bound to a region at a time.
type Manager struct {
	mu       sync.Mutex
	byID     map[string]*Session
	byRegion map[string]*Session

	cfg Config
	cue CueNotifier
}

func NewManager(cfg Config, cue CueNotifier) *Manager {
	if cue == nil {
		cue = noopCue{}
	}
	return &Manager{
		byID:     make(map[string]*Session),
		byRegion: make(map[string]*Session),
		cfg:      cfg,
		cue:      cue,
	}
}

// Start acquires the region and returns a live session.
// A missing region id or a region already bound to a live session fails
// with domain.ErrScannerInit.
func (m *Manager) Start(regionID string) (*Session, error) {
	regionID = strings.TrimSpace(regionID)
	if regionID == "" {
		return nil, fmt.Errorf("start scan: region id is empty: %w", domain.ErrScannerInit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byRegion[regionID]; ok && existing.Scanning() {
		return nil, fmt.Errorf("start scan: region %q already scanning: %w", regionID, domain.ErrScannerInit)
	}

	s := &Session{
		ID:       uuid.NewString(),
		RegionID: regionID,
		scanning: true,
		debounce: m.cfg.DebounceWindow,
		cue:      m.cue,
	}
	m.byID[s.ID] = s
	m.byRegion[regionID] = s

	return s, nil
}

// Stop halts the session and releases its region.
// Stopping an unknown or already-stopped session is a no-op.
func (m *Manager) Stop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byID[sessionID]
	if !ok {
		return
	}

	s.stop()
	delete(m.byID, sessionID)
	if bound, ok := m.byRegion[s.RegionID]; ok && bound == s {
		delete(m.byRegion, s.RegionID)
	}
}

// Toggle stops the region's live session if one exists, otherwise
// starts a new one. Returns the new session when one was started.
func (m *Manager) Toggle(regionID string) (*Session, error) {
	m.mu.Lock()
	existing, ok := m.byRegion[strings.TrimSpace(regionID)]
	m.mu.Unlock()

	if ok && existing.Scanning() {
		m.Stop(existing.ID)
		return nil, nil
	}

	return m.Start(regionID)
}

// Get returns a live session by id.
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[sessionID]
	return s, ok
}

// Config returns the decoder settings clients should run with.
func (m *Manager) Config() Config {
	return m.cfg
}

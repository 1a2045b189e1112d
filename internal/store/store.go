// Package store maintains the in-memory applications list for each signed-in
// user, together with the loading and skeleton-row bookkeeping the views
// render from. Views read snapshots; all mutation goes through Load.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tracklet-app/tracklet/internal/models"
)

// Mode declares which listing a view wants. Views state this explicitly
// rather than the store inspecting the request path.
type Mode string

const (
	// ModeFull loads every application the user has (list page).
	ModeFull Mode = "full"
	// ModeSummary loads the most recent applications for the dashboard.
	ModeSummary Mode = "summary"
)

// summaryLimit is the most rows the dashboard summary ever shows.
const summaryLimit = 5

// defaultMinLoadDelay keeps the skeleton on screen briefly so a fast
// response does not flash it.
const defaultMinLoadDelay = 300 * time.Millisecond

// Gateway is the slice of the CRUD gateway the store consumes.
type Gateway interface {
	List(ctx context.Context, userID string, limit int) ([]models.Application, error)
}

// Options control a single Load.
type Options struct {
	Mode Mode
	// ReserveExtraRow sizes the skeleton one row larger, so a refetch right
	// after an add already has space for the new row.
	ReserveExtraRow bool
}

// Snapshot is the read-only view of store state.
type Snapshot struct {
	Applications []models.Application `json:"applications"`
	IsLoading    bool                 `json:"is_loading"`
	SkeletonRows int                  `json:"skeleton_rows"`
}

// Store holds one user's applications list. It is the single owner of that
// state; views never write to it directly.
type Store struct {
	userID  string
	gateway Gateway
	log     *zap.Logger

	// minLoadDelay is overridable in tests.
	minLoadDelay time.Duration

	mu           sync.Mutex
	apps         []models.Application
	isLoading    bool
	skeletonRows int
	seq          uint64
}

func New(userID string, gateway Gateway, log *zap.Logger) *Store {
	return &Store{
		userID:       userID,
		gateway:      gateway,
		log:          log,
		minLoadDelay: defaultMinLoadDelay,
		skeletonRows: 1,
	}
}

// Load fetches the user's applications through the gateway and publishes
// them. A mode other than full or summary is a no-op: that view does not
// consume this list, so no request is made.
//
// Overlapping loads are sequenced: each call takes the next sequence number
// and only the latest one may publish, so a slow older response can never
// overwrite a newer one. On gateway error the previous snapshot stays
// visible and the minimum-delay wait is skipped.
func (s *Store) Load(ctx context.Context, opts Options) error {
	var limit int
	switch opts.Mode {
	case ModeFull:
		limit = 0
	case ModeSummary:
		limit = summaryLimit
	default:
		return nil
	}

	s.mu.Lock()
	s.isLoading = true
	s.skeletonRows = 1
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	start := time.Now()
	apps, err := s.gateway.List(ctx, s.userID, limit)
	if err != nil {
		s.finish(seq)
		return fmt.Errorf("load applications: %w", err)
	}

	skeleton := len(apps)
	if opts.ReserveExtraRow && !(opts.Mode == ModeSummary && len(apps) >= summaryLimit) {
		// A full dashboard page of 5 has no room for a new visible row.
		skeleton++
	}
	s.mu.Lock()
	if seq == s.seq {
		s.skeletonRows = skeleton
	}
	s.mu.Unlock()

	if wait := s.minLoadDelay - time.Since(start); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.finish(seq)
			return ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// Superseded by a newer load; discard this result.
		return nil
	}
	s.apps = apps
	s.isLoading = false
	s.log.Debug("applications published",
		zap.String("mode", string(opts.Mode)), zap.Int("count", len(apps)))
	return nil
}

// finish clears the loading flag without publishing, unless a newer load
// owns the state.
func (s *Store) finish(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq {
		s.isLoading = false
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := make([]models.Application, len(s.apps))
	copy(apps, s.apps)
	return Snapshot{
		Applications: apps,
		IsLoading:    s.isLoading,
		SkeletonRows: s.skeletonRows,
	}
}

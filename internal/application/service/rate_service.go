package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jewelsoft/estima-api/internal/domain/erp"
)

// ErrRateUnavailable means the rate endpoint answered but did not
// carry both board rates. Distinct from a transport failure.
var ErrRateUnavailable = errors.New("rate feed: gold/silver rate missing from response")

// RateSnapshot is the current view of the board rates. Exactly one of
// Loading, Err, or a valid rate pair is in effect.
type RateSnapshot struct {
	Loading    bool      `json:"loading"`
	GoldRate   float64   `json:"gold_rate"`
	SilverRate float64   `json:"silver_rate"`
	FetchedAt  time.Time `json:"fetched_at,omitempty"`
	Err        string    `json:"error,omitempty"`
}

// RateService polls the board-rate endpoint on a fixed interval and
// serves the latest snapshot to consumers.
type RateService struct {
	client   erp.Client
	interval time.Duration

	mu   sync.RWMutex
	snap RateSnapshot
}

// NewRateService creates a rate poller. The first fetch happens as
// soon as Start is called; until then the snapshot reports loading.
func NewRateService(client erp.Client, interval time.Duration) *RateService {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &RateService{
		client:   client,
		interval: interval,
		snap:     RateSnapshot{Loading: true},
	}
}

// Start runs the poll loop until ctx is cancelled. It fetches once
// immediately, then on every interval tick.
func (s *RateService) Start(ctx context.Context) {
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// Snapshot returns the latest rate view.
func (s *RateService) Snapshot() RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Refresh forces an immediate fetch outside the poll cadence.
func (s *RateService) Refresh(ctx context.Context) RateSnapshot {
	s.refresh(ctx)
	return s.Snapshot()
}

func (s *RateService) refresh(ctx context.Context) {
	rate, err := s.client.TodayRate(ctx)
	if err != nil {
		log.Printf("rate feed: fetch failed: %v", err)
		s.setError(err)
		return
	}
	if rate.GoldRate == nil || rate.SilverRate == nil {
		log.Printf("rate feed: %v", ErrRateUnavailable)
		s.setError(ErrRateUnavailable)
		return
	}

	s.mu.Lock()
	s.snap = RateSnapshot{
		GoldRate:   rate.GoldRate.Float(),
		SilverRate: rate.SilverRate.Float(),
		FetchedAt:  time.Now(),
	}
	s.mu.Unlock()
}

// setError records a failure without discarding the timestamp of the
// last good fetch; consumers see the error until the next success.
func (s *RateService) setError(err error) {
	s.mu.Lock()
	s.snap = RateSnapshot{Err: err.Error(), FetchedAt: s.snap.FetchedAt}
	s.mu.Unlock()
}

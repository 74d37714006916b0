// Package tracking exposes the permit and buyout screens' data: filtered
// lists plus the status rollups the tab headers show.
package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// DefaultPermitLookahead bounds the "expiring soon" filter when a request
// does not specify a window.
const DefaultPermitLookahead = 90 * 24 * time.Hour

// PermitList is the permit screen payload.
type PermitList struct {
	ProjectID uuid.UUID                    `json:"projectId"`
	Permits   []project.Permit             `json:"permits"`
	Counts    map[project.PermitStatus]int `json:"counts"`
	// ExpiringSoon lists approved permits running out inside the window.
	ExpiringSoon []project.Permit `json:"expiringSoon"`
}

// BuyoutList is the buyout screen payload.
type BuyoutList struct {
	ProjectID uuid.UUID                    `json:"projectId"`
	Buyouts   []project.Buyout             `json:"buyouts"`
	Counts    map[project.BuyoutStatus]int `json:"counts"`
	// TotalVariance sums awarded savings (positive) and overruns
	// (negative) across committed packages.
	TotalVariance float64 `json:"totalVariance"`
}

// Service answers tracking queries.
type Service struct {
	tracking project.TrackingRepository
	logger   logging.Logger
	now      func() time.Time
}

// NewService wires the tracking service.  Pass nil for time.Now.
func NewService(tracking project.TrackingRepository, log logging.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{tracking: tracking, logger: log.Named("tracking"), now: now}
}

// Permits returns a project's permits with status counts and the expiring
// lookahead.  A non-positive window falls back to the default.
func (s *Service) Permits(ctx context.Context, projectID uuid.UUID, window time.Duration) (*PermitList, error) {
	if window <= 0 {
		window = DefaultPermitLookahead
	}
	permits, err := s.tracking.ListPermits(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := &PermitList{
		ProjectID: projectID,
		Permits:   permits,
		Counts:    make(map[project.PermitStatus]int),
	}
	for _, p := range permits {
		out.Counts[p.Status]++
		if p.ExpiresWithin(now, window) {
			out.ExpiringSoon = append(out.ExpiringSoon, p)
		}
	}
	return out, nil
}

// Buyouts returns a project's buyout packages with status counts and the
// committed variance.
func (s *Service) Buyouts(ctx context.Context, projectID uuid.UUID) (*BuyoutList, error) {
	buyouts, err := s.tracking.ListBuyouts(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := &BuyoutList{
		ProjectID: projectID,
		Buyouts:   buyouts,
		Counts:    make(map[project.BuyoutStatus]int),
	}
	for _, b := range buyouts {
		out.Counts[b.Status]++
		out.TotalVariance += b.Variance()
	}
	return out, nil
}

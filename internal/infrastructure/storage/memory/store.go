// Package memory implements the repository contracts over in-process maps
// seeded with fixture data.  The service intentionally runs without a
// database; this store is the system of record.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/pkg/errors"
)

// Store holds every aggregate in memory.  Reads copy out, so callers can
// never alias internal state; the mutex exists for the seeding helpers used
// by tests.
type Store struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]project.Project
	order    []uuid.UUID
	budgets  map[uuid.UUID][]project.BudgetLine
	permits  map[uuid.UUID][]project.Permit
	buyouts  map[uuid.UUID][]project.Buyout
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		projects: make(map[uuid.UUID]project.Project),
		budgets:  make(map[uuid.UUID][]project.BudgetLine),
		permits:  make(map[uuid.UUID][]project.Permit),
		buyouts:  make(map[uuid.UUID][]project.Buyout),
	}
}

// AddProject inserts or replaces a project.
func (s *Store) AddProject(p project.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.projects[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.projects[p.ID] = p
}

// AddBudgetLines appends budget lines under their project.
func (s *Store) AddBudgetLines(lines ...project.BudgetLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range lines {
		s.budgets[l.ProjectID] = append(s.budgets[l.ProjectID], l)
	}
}

// AddPermits appends permits under their project.
func (s *Store) AddPermits(permits ...project.Permit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range permits {
		s.permits[p.ProjectID] = append(s.permits[p.ProjectID], p)
	}
}

// AddBuyouts appends buyout packages under their project.
func (s *Store) AddBuyouts(buyouts ...project.Buyout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range buyouts {
		s.buyouts[b.ProjectID] = append(s.buyouts[b.ProjectID], b)
	}
}

// ListProjects returns every project in insertion order.
func (s *Store) ListProjects(ctx context.Context) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "list projects")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]project.Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.projects[id])
	}
	return out, nil
}

// GetProject looks up one project by ID.
func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (project.Project, error) {
	if err := ctx.Err(); err != nil {
		return project.Project{}, errors.Wrap(err, errors.ErrCodeInternal, "get project")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return project.Project{}, errors.New(errors.ErrCodeProjectNotFound, "project not found").WithDetail(id.String())
	}
	return p, nil
}

// ListBudgetLines returns a project's budget lines sorted by cost code.
func (s *Store) ListBudgetLines(ctx context.Context, projectID uuid.UUID) ([]project.BudgetLine, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]project.BudgetLine(nil), s.budgets[projectID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CostCode < out[j].CostCode })
	return out, nil
}

// ListPermits returns a project's permits sorted by expiry date.
func (s *Store) ListPermits(ctx context.Context, projectID uuid.UUID) ([]project.Permit, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]project.Permit(nil), s.permits[projectID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

// ListBuyouts returns a project's buyout packages sorted by package name.
func (s *Store) ListBuyouts(ctx context.Context, projectID uuid.UUID) ([]project.Buyout, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]project.Buyout(nil), s.buyouts[projectID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Package < out[j].Package })
	return out, nil
}

package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/internal/infrastructure/storage/memory"
	"github.com/brickfield/sitecast/internal/testutil"
	"github.com/brickfield/sitecast/pkg/errors"
)

func newTestService(now time.Time) *Service {
	return NewService(memory.NewSeededStore(), testutil.NewMockLogger(), func() time.Time { return now })
}

func TestPermitsCountsAndList(t *testing.T) {
	svc := newTestService(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	out, err := svc.Permits(context.Background(), memory.ProjectRiverside, 0)
	require.NoError(t, err)

	assert.Len(t, out.Permits, 3)
	assert.Equal(t, 2, out.Counts[project.PermitApproved])
	assert.Equal(t, 1, out.Counts[project.PermitPending])
	assert.Empty(t, out.ExpiringSoon)
}

func TestPermitsExpiringWindow(t *testing.T) {
	// By early June the electrical permit (expires July 20) is inside the
	// default 90-day window.
	svc := newTestService(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	out, err := svc.Permits(context.Background(), memory.ProjectRiverside, 0)
	require.NoError(t, err)
	require.Len(t, out.ExpiringSoon, 1)
	assert.Equal(t, "EL-2025-00312", out.ExpiringSoon[0].Number)
}

func TestPermitsCustomWindow(t *testing.T) {
	svc := newTestService(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	// A year-long window catches both approved Riverside permits.
	out, err := svc.Permits(context.Background(), memory.ProjectRiverside, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, out.ExpiringSoon, 2)
}

func TestBuyoutsCountsAndVariance(t *testing.T) {
	svc := newTestService(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	out, err := svc.Buyouts(context.Background(), memory.ProjectRiverside)
	require.NoError(t, err)

	assert.Len(t, out.Buyouts, 3)
	assert.Equal(t, 1, out.Counts[project.BuyoutExecuted])
	assert.Equal(t, 1, out.Counts[project.BuyoutAwarded])
	assert.Equal(t, 1, out.Counts[project.BuyoutBidding])
	assert.InDelta(t, 59000-65500, out.TotalVariance, 0.001)
}

func TestTrackingUnknownProject(t *testing.T) {
	svc := newTestService(time.Now())

	_, err := svc.Permits(context.Background(), uuid.New(), 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProjectNotFound))

	_, err = svc.Buyouts(context.Background(), uuid.New())
	assert.True(t, errors.IsCode(err, errors.ErrCodeProjectNotFound))
}

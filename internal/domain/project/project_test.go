package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/pkg/errors"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"executive", RoleExecutive},
		{"Project Manager", RoleProjectManager},
		{"project-manager", RoleProjectManager},
		{"pm", RoleProjectManager},
		{"SUPERINTENDENT", RoleSuperintendent},
		{" accountant ", RoleAccountant},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseRoleUnknown(t *testing.T) {
	_, err := ParseRole("janitor")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownRole))
}

func TestPermitExpiresWithin(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	base := Permit{Status: PermitApproved, ExpiryDate: now.AddDate(0, 0, 14)}
	assert.True(t, base.ExpiresWithin(now, window))

	farOut := base
	farOut.ExpiryDate = now.AddDate(0, 6, 0)
	assert.False(t, farOut.ExpiresWithin(now, window))

	lapsed := base
	lapsed.ExpiryDate = now.AddDate(0, 0, -1)
	assert.False(t, lapsed.ExpiresWithin(now, window))

	pending := base
	pending.Status = PermitPending
	assert.False(t, pending.ExpiresWithin(now, window))
}

func TestBuyoutVariance(t *testing.T) {
	b := Buyout{Status: BuyoutAwarded, BudgetValue: 100000, AwardValue: 92500}
	assert.Equal(t, 7500.0, b.Variance())

	b.Status = BuyoutBidding
	assert.Zero(t, b.Variance())
}

func TestBudgetLineTotalActuals(t *testing.T) {
	line := BudgetLine{ActualsByPeriod: map[string]float64{
		"january2025":  3000,
		"february2025": 4500.25,
	}}
	assert.Equal(t, 7500.25, line.TotalActuals())
}

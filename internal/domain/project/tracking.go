package project

import (
	"time"

	"github.com/google/uuid"
)

// PermitStatus is the review state of a permit application.
type PermitStatus string

const (
	PermitPending  PermitStatus = "pending"
	PermitApproved PermitStatus = "approved"
	PermitRejected PermitStatus = "rejected"
	PermitExpired  PermitStatus = "expired"
)

// Permit is a regulatory permit tracked against a project.
type Permit struct {
	ID         uuid.UUID    `json:"id"`
	ProjectID  uuid.UUID    `json:"projectId"`
	Type       string       `json:"type"`
	Number     string       `json:"number"`
	Authority  string       `json:"authority"`
	Status     PermitStatus `json:"status"`
	IssuedDate time.Time    `json:"issuedDate"`
	ExpiryDate time.Time    `json:"expiryDate"`
}

// ExpiresWithin reports whether an approved permit runs out inside the
// lookahead window starting at now.  Already-expired and non-approved
// permits do not count.
func (p Permit) ExpiresWithin(now time.Time, window time.Duration) bool {
	if p.Status != PermitApproved || p.ExpiryDate.IsZero() {
		return false
	}
	if p.ExpiryDate.Before(now) {
		return false
	}
	return p.ExpiryDate.Sub(now) <= window
}

// BuyoutStatus is the procurement state of a trade package.
type BuyoutStatus string

const (
	BuyoutPending  BuyoutStatus = "pending"
	BuyoutBidding  BuyoutStatus = "bidding"
	BuyoutAwarded  BuyoutStatus = "awarded"
	BuyoutExecuted BuyoutStatus = "executed"
)

// Buyout is one trade package being bought out against the project budget.
type Buyout struct {
	ID          uuid.UUID    `json:"id"`
	ProjectID   uuid.UUID    `json:"projectId"`
	Package     string       `json:"package"`
	Vendor      string       `json:"vendor"`
	Status      BuyoutStatus `json:"status"`
	BudgetValue float64      `json:"budgetValue"`
	AwardValue  float64      `json:"awardValue"`
	AwardDate   time.Time    `json:"awardDate"`
}

// Variance is the awarded savings (positive) or overrun (negative) against
// the package budget.  Zero until an award value exists.
func (b Buyout) Variance() float64 {
	if b.Status != BuyoutAwarded && b.Status != BuyoutExecuted {
		return 0
	}
	return b.BudgetValue - b.AwardValue
}

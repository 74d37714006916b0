// Package project holds the reporting domain entities: projects with their
// budget lines, permits and buyout packages, and the repository contracts
// the application services consume.
package project

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle stage of a project.
type Status string

const (
	StatusPlanning Status = "planning"
	StatusActive   Status = "active"
	StatusOnHold   Status = "on_hold"
	StatusComplete Status = "complete"
)

// Project is a construction project under management.
type Project struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Client        string    `json:"client"`
	Address       string    `json:"address"`
	Status        Status    `json:"status"`
	Manager       string    `json:"manager"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	ContractValue float64   `json:"contractValue"`
}

// BudgetLine is one cost-coded slice of a project budget.  Budget and Method
// keep the upstream data layer's loose string forms (currency-formatted
// amounts, human-readable curve labels); parsing and normalisation happen at
// the forecast boundary.
type BudgetLine struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	CostCode    string    `json:"costCode"`
	Description string    `json:"description"`

	// Budget may be "$250,000.00" or a plain number string.
	Budget string `json:"budget"`

	// Method is the distribution label as entered in the UI, e.g.
	// "Bell Curve" or "front-loaded".
	Method string `json:"method"`

	// ActualsByPeriod is keyed by the period label convention
	// ("march2025") used throughout the upstream data.
	ActualsByPeriod map[string]float64 `json:"actualsByPeriod"`
}

// TotalActuals sums the recorded actual costs on the line.
func (b BudgetLine) TotalActuals() float64 {
	var sum float64
	for _, v := range b.ActualsByPeriod {
		sum += v
	}
	return sum
}

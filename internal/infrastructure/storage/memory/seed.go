package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/brickfield/sitecast/internal/domain/project"
)

// Fixed IDs so API examples, CLI defaults and tests can reference the seed
// data directly.
var (
	ProjectRiverside = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c1")
	ProjectMaple     = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c2")
	ProjectHarbor    = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c3")
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewSeededStore returns a store loaded with the demo portfolio the
// dashboard ships with.
func NewSeededStore() *Store {
	s := NewStore()

	s.AddProject(project.Project{
		ID:            ProjectRiverside,
		Name:          "Riverside Medical Office Building",
		Client:        "Lakeview Health Partners",
		Address:       "410 Riverside Dr, Columbus, OH",
		Status:        project.StatusActive,
		Manager:       "D. Okafor",
		StartDate:     date(2025, time.January, 1),
		EndDate:       date(2025, time.December, 31),
		ContractValue: 18_400_000,
	})
	s.AddProject(project.Project{
		ID:            ProjectMaple,
		Name:          "Maple Street Apartments",
		Client:        "Cornerstone Residential",
		Address:       "88 Maple St, Dayton, OH",
		Status:        project.StatusActive,
		Manager:       "J. Whitfield",
		StartDate:     date(2025, time.March, 1),
		EndDate:       date(2026, time.June, 30),
		ContractValue: 9_750_000,
	})
	s.AddProject(project.Project{
		ID:            ProjectHarbor,
		Name:          "Harbor Logistics Warehouse",
		Client:        "Port Clinton Holdings",
		Address:       "1 Harbor Way, Toledo, OH",
		Status:        project.StatusPlanning,
		Manager:       "D. Okafor",
		StartDate:     date(2025, time.September, 1),
		EndDate:       date(2026, time.August, 31),
		ContractValue: 6_200_000,
	})

	s.AddBudgetLines(
		project.BudgetLine{
			ID:          uuid.MustParse("11111111-0000-0000-0000-000000000001"),
			ProjectID:   ProjectRiverside,
			CostCode:    "03-3000",
			Description: "Cast-in-place concrete",
			Budget:      "$2,450,000.00",
			Method:      "Front Loaded",
			ActualsByPeriod: map[string]float64{
				"january2025":  310_500,
				"february2025": 402_250.75,
			},
		},
		project.BudgetLine{
			ID:          uuid.MustParse("11111111-0000-0000-0000-000000000002"),
			ProjectID:   ProjectRiverside,
			CostCode:    "05-1200",
			Description: "Structural steel framing",
			Budget:      "$3,180,000.00",
			Method:      "Bell Curve",
			ActualsByPeriod: map[string]float64{
				"february2025": 145_000,
			},
		},
		project.BudgetLine{
			ID:          uuid.MustParse("11111111-0000-0000-0000-000000000003"),
			ProjectID:   ProjectRiverside,
			CostCode:    "23-0000",
			Description: "HVAC",
			Budget:      "$1,960,000.00",
			Method:      "Back Loaded",
		},
		project.BudgetLine{
			ID:          uuid.MustParse("11111111-0000-0000-0000-000000000004"),
			ProjectID:   ProjectRiverside,
			CostCode:    "09-9000",
			Description: "Finishes",
			Budget:      "$1,275,000.00",
			Method:      "Linear",
		},
		project.BudgetLine{
			ID:          uuid.MustParse("22222222-0000-0000-0000-000000000001"),
			ProjectID:   ProjectMaple,
			CostCode:    "03-3000",
			Description: "Foundations and podium deck",
			Budget:      "$1,420,000.00",
			Method:      "Front Loaded",
			ActualsByPeriod: map[string]float64{
				"march2025": 96_400,
			},
		},
		project.BudgetLine{
			ID:          uuid.MustParse("22222222-0000-0000-0000-000000000002"),
			ProjectID:   ProjectMaple,
			CostCode:    "06-1000",
			Description: "Wood framing",
			Budget:      "$2,310,000.00",
			Method:      "Bell Curve",
		},
		project.BudgetLine{
			ID:          uuid.MustParse("33333333-0000-0000-0000-000000000001"),
			ProjectID:   ProjectHarbor,
			CostCode:    "13-3400",
			Description: "Pre-engineered metal building",
			Budget:      "$2,875,000.00",
			Method:      "Linear",
		},
	)

	s.AddPermits(
		project.Permit{
			ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
			ProjectID:  ProjectRiverside,
			Type:       "Building",
			Number:     "BP-2024-18821",
			Authority:  "City of Columbus",
			Status:     project.PermitApproved,
			IssuedDate: date(2024, time.November, 12),
			ExpiryDate: date(2025, time.November, 12),
		},
		project.Permit{
			ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
			ProjectID:  ProjectRiverside,
			Type:       "Electrical",
			Number:     "EL-2025-00312",
			Authority:  "City of Columbus",
			Status:     project.PermitApproved,
			IssuedDate: date(2025, time.January, 20),
			ExpiryDate: date(2025, time.July, 20),
		},
		project.Permit{
			ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003"),
			ProjectID:  ProjectRiverside,
			Type:       "Mechanical",
			Number:     "ME-2025-00458",
			Authority:  "City of Columbus",
			Status:     project.PermitPending,
		},
		project.Permit{
			ID:         uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001"),
			ProjectID:  ProjectMaple,
			Type:       "Building",
			Number:     "BP-2025-00107",
			Authority:  "City of Dayton",
			Status:     project.PermitApproved,
			IssuedDate: date(2025, time.February, 3),
			ExpiryDate: date(2026, time.February, 3),
		},
		project.Permit{
			ID:         uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002"),
			ProjectID:  ProjectMaple,
			Type:       "Demolition",
			Number:     "DM-2024-00991",
			Authority:  "City of Dayton",
			Status:     project.PermitExpired,
			IssuedDate: date(2024, time.June, 1),
			ExpiryDate: date(2024, time.December, 1),
		},
	)

	s.AddBuyouts(
		project.Buyout{
			ID:          uuid.MustParse("cccccccc-0000-0000-0000-000000000001"),
			ProjectID:   ProjectRiverside,
			Package:     "Concrete",
			Vendor:      "Scioto Concrete Co.",
			Status:      project.BuyoutExecuted,
			BudgetValue: 2_450_000,
			AwardValue:  2_391_000,
			AwardDate:   date(2024, time.December, 18),
		},
		project.Buyout{
			ID:          uuid.MustParse("cccccccc-0000-0000-0000-000000000002"),
			ProjectID:   ProjectRiverside,
			Package:     "Structural Steel",
			Vendor:      "Buckeye Iron Works",
			Status:      project.BuyoutAwarded,
			BudgetValue: 3_180_000,
			AwardValue:  3_245_500,
			AwardDate:   date(2025, time.January, 30),
		},
		project.Buyout{
			ID:          uuid.MustParse("cccccccc-0000-0000-0000-000000000003"),
			ProjectID:   ProjectRiverside,
			Package:     "HVAC",
			Vendor:      "",
			Status:      project.BuyoutBidding,
			BudgetValue: 1_960_000,
		},
		project.Buyout{
			ID:          uuid.MustParse("dddddddd-0000-0000-0000-000000000001"),
			ProjectID:   ProjectMaple,
			Package:     "Framing",
			Vendor:      "Miami Valley Carpentry",
			Status:      project.BuyoutAwarded,
			BudgetValue: 2_310_000,
			AwardValue:  2_260_000,
			AwardDate:   date(2025, time.March, 14),
		},
		project.Buyout{
			ID:          uuid.MustParse("dddddddd-0000-0000-0000-000000000002"),
			ProjectID:   ProjectMaple,
			Package:     "Elevators",
			Vendor:      "",
			Status:      project.BuyoutPending,
			BudgetValue: 480_000,
		},
	)

	return s
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// ProjectsClient covers the project, dashboard, and tracking endpoints.
type ProjectsClient struct {
	client *Client
}

// Project mirrors the server's project payload.
type Project struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Client        string    `json:"client"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	Manager       string    `json:"manager"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	ContractValue float64   `json:"contractValue"`
}

// Widget is one dashboard tile.
type Widget struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// DashboardSnapshot is a role's widget set for a project.
type DashboardSnapshot struct {
	ProjectID   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName"`
	Role        string    `json:"role"`
	GeneratedAt time.Time `json:"generatedAt"`
	Widgets     []Widget  `json:"widgets"`
}

// Permit mirrors the server's permit record.
type Permit struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	Type       string    `json:"type"`
	Number     string    `json:"number"`
	Authority  string    `json:"authority"`
	Status     string    `json:"status"`
	IssuedDate time.Time `json:"issuedDate"`
	ExpiryDate time.Time `json:"expiryDate"`
}

// PermitList is the permits endpoint payload.
type PermitList struct {
	ProjectID    uuid.UUID      `json:"projectId"`
	Permits      []Permit       `json:"permits"`
	Counts       map[string]int `json:"counts"`
	ExpiringSoon []Permit       `json:"expiringSoon"`
}

// Buyout mirrors the server's buyout record.
type Buyout struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Package     string    `json:"package"`
	Vendor      string    `json:"vendor"`
	Status      string    `json:"status"`
	BudgetValue float64   `json:"budgetValue"`
	AwardValue  float64   `json:"awardValue"`
	AwardDate   time.Time `json:"awardDate"`
}

// BuyoutList is the buyouts endpoint payload.
type BuyoutList struct {
	ProjectID     uuid.UUID      `json:"projectId"`
	Buyouts       []Buyout       `json:"buyouts"`
	Counts        map[string]int `json:"counts"`
	TotalVariance float64        `json:"totalVariance"`
}

// List returns every project in the portfolio.
func (pc *ProjectsClient) List(ctx context.Context) ([]Project, error) {
	var out struct {
		Projects []Project `json:"projects"`
	}
	if err := pc.client.do(ctx, http.MethodGet, "/api/v1/projects", nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// Get fetches one project by ID.
func (pc *ProjectsClient) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	var out Project
	if err := pc.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the widget set for the given role.
func (pc *ProjectsClient) Dashboard(ctx context.Context, id uuid.UUID, role string) (*DashboardSnapshot, error) {
	path := fmt.Sprintf("/api/v1/projects/%s/dashboard", id)
	if role != "" {
		path += "?role=" + url.QueryEscape(role)
	}
	var out DashboardSnapshot
	if err := pc.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Permits fetches the permit list; expiringDays of 0 uses the server default
// window.
func (pc *ProjectsClient) Permits(ctx context.Context, id uuid.UUID, expiringDays int) (*PermitList, error) {
	path := fmt.Sprintf("/api/v1/projects/%s/permits", id)
	if expiringDays > 0 {
		path += fmt.Sprintf("?expiring_days=%d", expiringDays)
	}
	var out PermitList
	if err := pc.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Buyouts fetches the buyout packages.
func (pc *ProjectsClient) Buyouts(ctx context.Context, id uuid.UUID) (*BuyoutList, error) {
	var out BuyoutList
	if err := pc.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%s/buyouts", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package project

import (
	"strings"

	"github.com/brickfield/sitecast/pkg/errors"
)

// Role scopes which dashboard widgets and report sections a viewer sees.
type Role string

const (
	RoleExecutive      Role = "executive"
	RoleProjectManager Role = "project_manager"
	RoleSuperintendent Role = "superintendent"
	RoleAccountant     Role = "accountant"
)

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleExecutive, RoleProjectManager, RoleSuperintendent, RoleAccountant}
}

// ParseRole maps a query-string or CLI role value to its Role.  Dashes and
// spaces are accepted in place of underscores.
func ParseRole(s string) (Role, error) {
	normalized := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch Role(normalized) {
	case RoleExecutive, RoleProjectManager, RoleSuperintendent, RoleAccountant:
		return Role(normalized), nil
	case "pm":
		return RoleProjectManager, nil
	default:
		return "", errors.New(errors.ErrCodeUnknownRole, "unknown role").WithDetail(s)
	}
}

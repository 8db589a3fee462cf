package constants

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin             Role = "ADMIN"
	RoleAssessor          Role = "ASSESSOR"
	RoleLeadAssessor      Role = "LEAD_ASSESSOR"
	RoleOversightAssessor Role = "OVERSIGHT_ASSESSOR"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyAssessorsCanAccess = "❌ Hanya assessor (atau admin) yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorAssessor(feature string) string {
	return fmt.Sprintf(ErrOnlyAssessorsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleAdmin,
		RoleAssessor,
		RoleLeadAssessor,
		RoleOversightAssessor,
	}

	AssessorRoles = []Role{
		RoleAssessor,
		RoleLeadAssessor,
		RoleOversightAssessor,
	}

	AdminOnly = []Role{
		RoleAdmin,
	}
)

// ParseRole menerima "lead_assessor", " LEAD_ASSESSOR " dst.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	for _, it := range AllRoles {
		if it == r {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// HasRole: apakah r termasuk salah satu allowed.
func HasRole(r Role, allowed []Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

// RoleStrings dipakai untuk pesan error / oneof validator.
func RoleStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

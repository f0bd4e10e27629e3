package domain

import "time"

// RoleAdministrator is the reserved role name that grants unrestricted task
// mutation rights. The comparison is exact and case-sensitive.
const RoleAdministrator = "Administrator"

// Well-known permission names.
const (
	PermTasksCreate   = "tasks.create"
	PermTasksViewAll  = "tasks.view_all"
	PermReportingView = "reporting.view"
	PermRolesManage   = "roles.manage"
)

// Permission is an atomic capability, globally unique by name
// (e.g. "tasks.create").
type Permission struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Role is a named bundle of permission names assigned to users.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// User models an authenticated actor in the system. Identity is the email
// address; Roles carry the hydrated role/permission data so permission
// checks stay pure functions over loaded state.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	Roles        []Role    `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds a role with the given name.
func (u *User) HasRole(name string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

package entity

// Role represents an admin panel role
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin  = 1
	RoleIDEditor = 2
)

// RoleNames constants
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// RoleIDByName maps a role name to its fixed id.
func RoleIDByName(name string) (int, bool) {
	switch name {
	case RoleAdmin:
		return RoleIDAdmin, true
	case RoleEditor:
		return RoleIDEditor, true
	}
	return 0, false
}

// RoleNameByID is the inverse of RoleIDByName.
func RoleNameByID(id int) string {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDEditor:
		return RoleEditor
	}
	return ""
}

// DefaultRoles are the rows every installation needs.
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleIDAdmin, RoleName: RoleAdmin, Description: "Full access including users, settings and maintenance scripts"},
		{ID: RoleIDEditor, RoleName: RoleEditor, Description: "Manages site content and appointment requests"},
	}
}

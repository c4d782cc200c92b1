package domain

import "time"

// User roles
const (
	RoleStaff      = "staff"       // UKNF employee
	RoleEntityUser = "entity_user" // user acting for a supervised entity
)

// User is a platform account. Authentication and account management live in a
// separate identity service; this service only reads users.
type User struct {
	ID                 int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email              string     `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	FirstName          string     `gorm:"column:first_name;size:100" json:"first_name"`
	LastName           string     `gorm:"column:last_name;size:100" json:"last_name"`
	Role               string     `gorm:"column:role;size:20;not null;default:entity_user" json:"role"`
	SupervisedEntityID *int64     `gorm:"column:supervised_entity_id;index" json:"supervised_entity_id,omitempty"`
	IsActive           bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	LastLoginAt        *time.Time `gorm:"column:last_login_at" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns "First Last", falling back to the email for accounts
// without a name on file.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsStaff reports whether the user is a UKNF employee.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Role               string `json:"role"`
	SupervisedEntityID *int64 `json:"supervised_entity_id,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Role:               u.Role,
		SupervisedEntityID: u.SupervisedEntityID,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants (closed set - see middleware.Can for what each may do)
const (
	RoleJudge = "juez"
	RoleAdmin = "admin"
)

// UserProfile is the one-to-one extension of a User account. The requested
// role is advisory until an administrator approves it; only then does Role
// carry meaning for access control.
type UserProfile struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	FullName    string    `gorm:"not null" json:"full_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	IDNumber    string    `gorm:"size:20;uniqueIndex;not null" json:"id_number"`
	DateOfBirth time.Time `gorm:"not null" json:"date_of_birth"`
	Phone       string    `gorm:"size:20" json:"phone,omitempty"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`

	RoleRequest     string `gorm:"size:10;not null" json:"role_request"`
	ApprovedByAdmin bool   `gorm:"not null;default:false" json:"approved_by_admin"`
	Role            string `gorm:"size:10" json:"role,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// IsValidRole checks if the role is one of the closed role set
func IsValidRole(role string) bool {
	return role == RoleJudge || role == RoleAdmin
}

// TableName specifies the table name for UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}

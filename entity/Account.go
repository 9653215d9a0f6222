package entity

import (
	"gorm.io/gorm"
)

// Account is the staff identity used to sign in; the full account system
// (OTP, lockout, roles management) lives in a separate service.
type Account struct {
	gorm.Model
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Role     string `gorm:"size:30" json:"role"` // manager | staff | kitchen

	BranchID *uint   `json:"branchId,omitempty"`
	Branch   *Branch `json:"-"`
}

package model

import (
	"time"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleUser       UserRole = "user"
	RoleStoreOwner UserRole = "store_owner"
)

// ValidRole reports whether the role belongs to the fixed role set.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Address      string    `gorm:"size:400" json:"address"`
	Role         UserRole  `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Stores []Store `gorm:"foreignKey:OwnerID" json:"stores,omitempty"`
}

func (User) TableName() string {
	return "users"
}

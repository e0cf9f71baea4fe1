package model

import (
	"time"
)

// Store may exist without an owner; OwnerID is a weak reference that is
// only set when the admin-supplied owner email resolves to a store_owner.
type Store struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email"`
	Address   string    `gorm:"size:400" json:"address"`
	OwnerID   *uint     `gorm:"index" json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

package model

import (
	"time"
)

// Rating holds one user's rating of one store. The composite unique
// index lets re-submissions upsert instead of creating a second row.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_ratings_user_store,unique" json:"user_id"`
	StoreID   uint      `gorm:"not null;index:idx_ratings_user_store,unique" json:"store_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Store Store `gorm:"foreignKey:StoreID" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

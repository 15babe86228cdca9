package models

import "time"

type UserProfile struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio       string    `gorm:"type:varchar(500);not null;default:''" json:"bio"`
	Avatar    *string   `gorm:"type:varchar(255)" json:"avatar"`
	Company   string    `gorm:"type:varchar(100);not null;default:''" json:"company"`
	Website   string    `gorm:"type:varchar(200);not null;default:''" json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

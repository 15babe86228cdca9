package models

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	FirstName    string     `gorm:"type:varchar(30);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(30);not null" json:"last_name"`
	PhoneNumber  string     `gorm:"type:varchar(17);not null;default:''" json:"phone_number"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
	IsStaff      bool       `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool       `gorm:"not null;default:false" json:"is_superuser"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName mirrors how the user is displayed next to owned resources.
func (u User) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
}

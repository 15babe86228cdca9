package dto

import (
	"time"

	"github.com/yukikurage/template-settings-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	IsVerified  bool       `json:"is_verified"`
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`
}

// ProfileDTO merges the user and profile fields a client may read
type ProfileDTO struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Bio         string    `json:"bio"`
	Avatar      *string   `json:"avatar"`
	Company     string    `json:"company"`
	Website     string    `json:"website"`
	IsVerified  bool      `json:"is_verified"`
	DateJoined  time.Time `json:"date_joined"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		PhoneNumber: user.PhoneNumber,
		IsVerified:  user.IsVerified,
		DateJoined:  user.CreatedAt,
		LastLogin:   user.LastLogin,
	}
}

// ToProfileDTO converts a user and their profile to ProfileDTO
func ToProfileDTO(user models.User, profile models.UserProfile) ProfileDTO {
	return ProfileDTO{
		ID:          profile.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Bio:         profile.Bio,
		Avatar:      profile.Avatar,
		Company:     profile.Company,
		Website:     profile.Website,
		IsVerified:  user.IsVerified,
		DateJoined:  user.CreatedAt,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

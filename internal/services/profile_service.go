package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/template-settings-api/internal/constants"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/repository"
	"gorm.io/gorm"
)

// ProfileService handles the profile and password of the current user.
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	hasher      PasswordHasher
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, hasher PasswordHasher) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		hasher:      hasher,
	}
}

// GetProfile returns the user and their profile, creating an empty profile
// on first access.
func (s *ProfileService) GetProfile(userID uint64) (*models.User, *models.UserProfile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return user, profile, nil
}

// UpdateProfileInput holds a partial profile update. Nil fields are left as
// they are.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Bio         *string
	Company     *string
	Website     *string
}

// UpdateProfile validates every supplied field, then saves the user and
// profile sides together.
func (s *ProfileService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, *models.UserProfile, error) {
	user, profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, nil, err
	}

	verr := newValidationError("Profile update failed")
	validateProfileInput(input, verr)
	if err := verr.orNil(); err != nil {
		return nil, nil, err
	}

	mergeUserFields(user, input)
	mergeProfileFields(profile, input)

	if err := s.userRepo.UpdateWithProfile(user, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, profile, nil
}

func validateProfileInput(input UpdateProfileInput, verr *ValidationError) {
	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if checkRequired(verr, "first_name", name) {
			checkMaxLength(verr, "first_name", name, constants.MaxNameLength)
		}
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if checkRequired(verr, "last_name", name) {
			checkMaxLength(verr, "last_name", name, constants.MaxNameLength)
		}
	}
	if input.PhoneNumber != nil {
		phone := strings.TrimSpace(*input.PhoneNumber)
		if phone != "" && !ValidPhoneNumber(phone) {
			verr.Add("phone_number", MsgInvalidPhone)
		}
		checkMaxLength(verr, "phone_number", phone, constants.MaxPhoneNumberLength)
	}
	if input.Bio != nil {
		checkMaxLength(verr, "bio", *input.Bio, constants.MaxBioLength)
	}
	if input.Company != nil {
		checkMaxLength(verr, "company", strings.TrimSpace(*input.Company), constants.MaxCompanyLength)
	}
	if input.Website != nil {
		website := strings.TrimSpace(*input.Website)
		if website != "" && !ValidURL(website) {
			verr.Add("website", MsgInvalidURL)
		}
		checkMaxLength(verr, "website", website, constants.MaxWebsiteLength)
	}
}

// mergeUserFields applies the user-side fields of a partial update.
func mergeUserFields(user *models.User, input UpdateProfileInput) {
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
}

// mergeProfileFields applies the profile-side fields of a partial update.
func mergeProfileFields(profile *models.UserProfile, input UpdateProfileInput) {
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Company != nil {
		profile.Company = strings.TrimSpace(*input.Company)
	}
	if input.Website != nil {
		profile.Website = strings.TrimSpace(*input.Website)
	}
}

// ChangePasswordInput holds a password change request.
type ChangePasswordInput struct {
	OldPassword        string
	NewPassword        string
	NewPasswordConfirm string
}

// ChangePassword replaces the password and revokes every token of the user,
// forcing a fresh login everywhere.
func (s *ProfileService) ChangePassword(userID uint64, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	verr := newValidationError("Password change failed")
	if !s.hasher.Compare(user.PasswordHash, input.OldPassword) {
		verr.Add("old_password", "Old password is incorrect.")
	}
	for _, problem := range ValidatePasswordStrength(input.NewPassword, PasswordAttributes{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}) {
		verr.Add("new_password", problem)
	}
	if input.NewPassword != input.NewPasswordConfirm {
		verr.Add(NonFieldErrors, "New passwords don't match.")
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordAndRevokeTokens(user.ID, hashed); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

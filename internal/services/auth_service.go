package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/template-settings-api/internal/constants"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/repository"
	"github.com/yukikurage/template-settings-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("user account is disabled")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrLogoutFailed       = errors.New("no active token to revoke")
	ErrFailedToRegister   = errors.New("failed to complete registration")
	ErrFailedToIssueToken = errors.New("failed to issue token")
)

const (
	msgEmailTaken       = "A user with this email already exists."
	msgUsernameTaken    = "A user with this username already exists."
	msgTenantEmailTaken = "Tenant with this email already exists."
	msgPasswordMismatch = "Passwords don't match."
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	tenantRepo repository.TenantRepository
	hasher     PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tenantRepo repository.TenantRepository, hasher PasswordHasher) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		tenantRepo: tenantRepo,
		hasher:     hasher,
	}
}

// RegisterInput represents the information required to create a new account.
type RegisterInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	PhoneNumber     string
	Password        string
	PasswordConfirm string
}

// Register creates a user together with an empty profile, a default tenant
// and a bearer token. Nothing is written unless every check passes.
func (s *AuthService) Register(input RegisterInput) (*models.User, *models.AuthToken, error) {
	user := &models.User{
		Username:    strings.TrimSpace(input.Username),
		Email:       NormalizeEmail(input.Email),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		IsActive:    true,
	}

	verr := newValidationError("Registration failed")
	validateRegistration(user, verr)
	if input.Password != input.PasswordConfirm {
		verr.Add(NonFieldErrors, msgPasswordMismatch)
	}
	for _, problem := range ValidatePasswordStrength(input.Password, PasswordAttributes{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}) {
		verr.Add("password", problem)
	}
	if err := s.checkIdentityAvailable(user, verr); err != nil {
		return nil, nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, nil, err
	}
	user.PasswordHash = hashed

	key, err := utils.GenerateTokenKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFailedToIssueToken, err)
	}

	profile := &models.UserProfile{}
	tenant := &models.Tenant{
		Name:  fmt.Sprintf("%s's Organization", user.FirstName),
		Email: user.Email,
	}
	token := &models.AuthToken{Key: key}

	if err := s.userRepo.CreateWithProfileAndTenant(user, profile, tenant, token); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, s.duplicateRegistrationError(user, err)
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrFailedToRegister, err)
	}

	return user, token, nil
}

// validateRegistration rejects blank identity fields, which the request
// binding lets through as whitespace, and values longer than their columns.
func validateRegistration(user *models.User, verr *ValidationError) {
	if checkRequired(verr, "username", user.Username) {
		checkMaxLength(verr, "username", user.Username, constants.MaxUsernameLength)
	}
	if checkRequired(verr, "email", user.Email) {
		if !ValidEmail(user.Email) {
			verr.Add("email", MsgInvalidEmail)
		}
		checkMaxLength(verr, "email", user.Email, constants.MaxEmailLength)
	}
	if checkRequired(verr, "first_name", user.FirstName) {
		checkMaxLength(verr, "first_name", user.FirstName, constants.MaxNameLength)
	}
	if checkRequired(verr, "last_name", user.LastName) {
		checkMaxLength(verr, "last_name", user.LastName, constants.MaxNameLength)
	}
	if user.PhoneNumber != "" && !ValidPhoneNumber(user.PhoneNumber) {
		verr.Add("phone_number", MsgInvalidPhone)
	}
	checkMaxLength(verr, "phone_number", user.PhoneNumber, constants.MaxPhoneNumberLength)
}

func (s *AuthService) checkIdentityAvailable(user *models.User, verr *ValidationError) error {
	if user.Email != "" {
		taken, err := s.userRepo.ExistsByEmail(user.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			verr.Add("email", msgEmailTaken)
		} else {
			tenantTaken, err := s.tenantRepo.ExistsByEmail(user.Email, 0)
			if err != nil {
				return fmt.Errorf("failed to check tenant email: %w", err)
			}
			if tenantTaken {
				verr.Add("email", msgTenantEmailTaken)
			}
		}
	}

	if user.Username != "" {
		taken, err := s.userRepo.ExistsByUsername(user.Username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			verr.Add("username", msgUsernameTaken)
		}
	}

	return nil
}

// duplicateRegistrationError turns a unique violation raised by a concurrent
// registration into the same field errors the pre-checks would have produced.
func (s *AuthService) duplicateRegistrationError(user *models.User, cause error) error {
	verr := newValidationError("Registration failed")
	if errors.Is(cause, repository.ErrCreateTenant) {
		verr.Add("email", msgTenantEmailTaken)
		return verr
	}

	if err := s.checkIdentityAvailable(user, verr); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToRegister, cause)
	}
	if !verr.HasErrors() {
		verr.Add(NonFieldErrors, "A user with these details already exists.")
	}
	return verr
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials, records the login time and returns the user's
// token, creating one if the user has none.
func (s *AuthService) Login(input LoginInput) (*models.User, *models.AuthToken, error) {
	user, err := s.userRepo.FindByEmail(NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, input.Password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

func (s *AuthService) issueToken(userID uint64) (*models.AuthToken, error) {
	key, err := utils.GenerateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToIssueToken, err)
	}

	token, err := s.tokenRepo.GetOrCreate(userID, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToIssueToken, err)
	}
	return token, nil
}

// Logout revokes the token identified by key.
func (s *AuthService) Logout(key string) error {
	deleted, err := s.tokenRepo.Delete(key)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if deleted == 0 {
		return ErrLogoutFailed
	}
	return nil
}

// Authenticate resolves a token key to its active user.
func (s *AuthService) Authenticate(key string) (*models.User, error) {
	token, err := s.tokenRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	if token.User == nil || !token.User.IsActive {
		return nil, ErrInvalidToken
	}

	return token.User, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// NormalizeEmail trims the address and lowercases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

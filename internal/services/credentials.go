package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/yukikurage/template-settings-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a hasher with bcrypt.DefaultCost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToHashPassword, err)
	}
	return string(hashed), nil
}

// Compare reports whether password matches hash.
func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// commonPasswords is a short list of passwords rejected outright.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "87654321": {},
	"qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"football": {}, "baseball": {}, "superman": {}, "princess": {},
	"trustno1": {}, "letmein1": {}, "welcome1": {}, "admin123": {},
	"abc12345": {}, "11111111": {}, "00000000": {}, "monkey123": {},
	"dragon123": {}, "master123": {}, "changeme": {}, "whatever": {},
}

var attributeSplit = regexp.MustCompile(`\W+`)

// maxSimilarity is the ratio above which a password counts as too close to
// one of the user's attributes.
const maxSimilarity = 0.7

// PasswordAttributes are the user values a password must not resemble.
type PasswordAttributes struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// ValidatePasswordStrength returns one message per failed rule, or nil when
// the password is acceptable.
func ValidatePasswordStrength(password string, attrs PasswordAttributes) []string {
	var problems []string

	if len([]rune(password)) < constants.MinPasswordLength {
		problems = append(problems, fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.",
			constants.MinPasswordLength,
		))
	}

	if len(password) > constants.MaxPasswordBytes {
		problems = append(problems, fmt.Sprintf(
			"This password is too long. It must contain at most %d bytes.",
			constants.MaxPasswordBytes,
		))
	}

	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		problems = append(problems, "This password is too common.")
	}

	if password != "" && isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}

	for _, attr := range []struct {
		name  string
		value string
	}{
		{"username", attrs.Username},
		{"email address", attrs.Email},
		{"first name", attrs.FirstName},
		{"last name", attrs.LastName},
	} {
		if tooSimilar(password, attr.value) {
			problems = append(problems, fmt.Sprintf("The password is too similar to the %s.", attr.name))
			break
		}
	}

	return problems
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func tooSimilar(password, value string) bool {
	password = strings.ToLower(password)
	value = strings.ToLower(strings.TrimSpace(value))
	if password == "" || value == "" {
		return false
	}

	parts := append([]string{value}, attributeSplit.Split(value, -1)...)
	for _, part := range parts {
		if part == "" {
			continue
		}
		if similarity(password, part) >= maxSimilarity {
			return true
		}
	}
	return false
}

// similarity is 2*M/T where M is the length of the longest common substring
// and T the total length of both strings.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}

	longest := 0
	prev := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		curr := make([]int, len(rb)+1)
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > longest {
					longest = curr[j]
				}
			}
		}
		prev = curr
	}

	return 2 * float64(longest) / float64(total)
}

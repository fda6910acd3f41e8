// Package customer models shop customers and their delivery profiles.
package customer

import (
	"strings"
	"time"
	"unicode"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
)

// Customer is a shopper identified by their messenger user id.
type Customer struct {
	UserID    int64
	Username  string
	FirstName string
	CreatedAt time.Time
}

// Profile holds delivery details reused across orders.
type Profile struct {
	UserID    int64
	FullName  string
	Phone     string
	Address   string
	UpdatedAt time.Time
}

// Phone length bounds in digits.
const (
	MinPhoneDigits = 7
	MaxPhoneDigits = 15
)

// NewCustomer validates a customer record.
func NewCustomer(userID int64, username, firstName string, now time.Time) (Customer, error) {
	if userID <= 0 {
		return Customer{}, domain.NewValidationError("user_id", "must be positive")
	}
	return Customer{
		UserID:    userID,
		Username:  strings.TrimPrefix(strings.TrimSpace(username), "@"),
		FirstName: strings.TrimSpace(firstName),
		CreatedAt: now.UTC(),
	}, nil
}

// NewProfile validates a delivery profile. All fields are required.
func NewProfile(userID int64, fullName, phone, address string, now time.Time) (Profile, error) {
	p := Profile{
		UserID:    userID,
		FullName:  strings.TrimSpace(fullName),
		Phone:     strings.TrimSpace(phone),
		Address:   strings.TrimSpace(address),
		UpdatedAt: now.UTC(),
	}
	switch {
	case p.UserID <= 0:
		return Profile{}, domain.NewValidationError("user_id", "must be positive")
	case p.FullName == "":
		return Profile{}, domain.NewValidationError("full_name", "is required")
	case p.Address == "":
		return Profile{}, domain.NewValidationError("address", "is required")
	}
	if err := validatePhone(p.Phone); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// validatePhone accepts digits with an optional leading "+" and
// space or dash separators.
func validatePhone(phone string) error {
	if phone == "" {
		return domain.NewValidationError("phone", "is required")
	}
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-':
		default:
			return domain.NewValidationError("phone", "contains invalid characters")
		}
	}
	if digits < MinPhoneDigits || digits > MaxPhoneDigits {
		return domain.NewValidationError("phone", "must have 7 to 15 digits")
	}
	return nil
}

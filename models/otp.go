package models

import "time"

type OTPPurpose string

const (
	OTPPurposeLogin OTPPurpose = "login"
	OTPPurposeReset OTPPurpose = "reset"
)

// OTPMaxAttempts invalidates a code after this many failed verifies.
const OTPMaxAttempts = 5

// OTPCode stores one active emailed code per email+purpose. Codes are
// bcrypt-hashed; the plaintext exists only in the outbound mail.
type OTPCode struct {
	ID         uint       `gorm:"primaryKey"`
	Email      string     `gorm:"index;not null"`
	Purpose    OTPPurpose `gorm:"type:VARCHAR(10);not null"`
	CodeHash   string     `gorm:"not null"`
	Attempts   int
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Usable reports whether the code can still be verified against.
func (o *OTPCode) Usable(now time.Time) bool {
	return o.ConsumedAt == nil && o.Attempts < OTPMaxAttempts && now.Before(o.ExpiresAt)
}

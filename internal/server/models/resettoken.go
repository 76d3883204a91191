package models

import (
	"time"

	"github.com/shareclass/accounts/uid"
)

// ResetToken is the single live password reset session for an account. A new
// forgot-password request overwrites the previous row instead of creating a
// second one. A successful reset does not remove the row; the token stays
// usable until ExpiresAt, and only a later issuance or expiry invalidates it.
type ResetToken struct {
	Model

	AccountID uid.ID `gorm:"uniqueIndex:,where:deleted_at is NULL" validate:"required"`

	// URLToken is the long unguessable value embedded in the reset link.
	URLToken string `gorm:"uniqueIndex:,where:deleted_at is NULL" validate:"required"`
	// EntryToken is the short verification code sent in the email body,
	// required as a second factor when the token is consumed.
	EntryToken string    `validate:"required"`
	ExpiresAt  time.Time `validate:"required"`
}

// Expired is true strictly after ExpiresAt.
func (t *ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

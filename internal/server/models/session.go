package models

import (
	"time"

	"github.com/shareclass/accounts/uid"
)

// Session is a browser session established by sign up or login. The token is
// stored in an http-only cookie and looked up on every request.
type Session struct {
	Model

	Token     string `gorm:"uniqueIndex:,where:deleted_at is NULL" validate:"required"`
	AccountID uid.ID `gorm:"index" validate:"required"`
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

package models

import (
	"strings"

	"github.com/shareclass/accounts/api"
	"github.com/shareclass/accounts/uid"
)

// Account is a user of the service. Local accounts use an email address as
// their username and hold a credential. Federated accounts are created by an
// identity provider, carry a provider-assigned username, and have no local
// password.
type Account struct {
	Model

	Username string `gorm:"uniqueIndex:,where:deleted_at is NULL" validate:"required"`

	// Federated is true when the account has at least one linked external
	// identity. It is computed from the linked identities table when the
	// account is loaded, not stored as a column.
	Federated bool `gorm:"-"`

	// Profile may be populated by some queries to contain the account's
	// profile.
	Profile *Profile `gorm:"-"`
}

func (a *Account) ToAPI() *api.UserResponse {
	u := &api.UserResponse{
		ID:       a.ID,
		Username: a.Username,
	}
	if a.Profile != nil {
		u.Nickname = a.Profile.Nickname
	}
	return u
}

// Profile holds display-only account details. It is created together with
// the account and defaults the nickname to the local part of the email.
type Profile struct {
	Model

	AccountID    uid.ID `gorm:"uniqueIndex" validate:"required"`
	Nickname     string
	ContactEmail string
}

// NewProfile builds the default profile for a local account registered with
// an email-shaped username.
func NewProfile(account *Account) *Profile {
	nickname, _, _ := strings.Cut(account.Username, "@")
	return &Profile{
		AccountID:    account.ID,
		Nickname:     nickname,
		ContactEmail: account.Username,
	}
}

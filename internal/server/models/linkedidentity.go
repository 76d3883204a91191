package models

import (
	"time"

	"github.com/shareclass/accounts/uid"
)

// LinkedIdentity records an external identity-provider account linked to a
// local account. The existence of at least one row makes the account
// federated, which blocks the password change and reset paths.
type LinkedIdentity struct {
	Model

	AccountID uid.ID `gorm:"index" validate:"required"`

	Provider    string `gorm:"uniqueIndex:idx_linked_identities_provider_uid,where:deleted_at is NULL" validate:"required"`
	ProviderUID string `gorm:"uniqueIndex:idx_linked_identities_provider_uid,where:deleted_at is NULL" validate:"required"`

	// Email as reported by the provider. Display only; password reset mail
	// never goes to this address.
	Email      string
	LastUpdate time.Time
}

package models

import "github.com/shareclass/accounts/uid"

// Credential is the password hash for a local account. Federated accounts
// have no Credential row; the credential paths must reject them before ever
// looking one up.
type Credential struct {
	Model

	AccountID    uid.ID `gorm:"uniqueIndex:,where:deleted_at is NULL" validate:"required"`
	PasswordHash []byte `validate:"required"`
}

package internal

import (
	"fmt"
)

var (
	ErrNotFound  = fmt.Errorf("record not found")
	ErrDuplicate = fmt.Errorf("duplicate record")

	ErrExpired      = fmt.Errorf("token expired")
	ErrUnauthorized = fmt.Errorf("unauthorized")
	ErrBadRequest   = fmt.Errorf("bad request")

	// ErrFederatedAccount marks operations that are not available to accounts
	// backed by an external identity provider. Those accounts have no local
	// password, so the credential paths must reject them with a kind the
	// caller can tell apart from a validation failure.
	ErrFederatedAccount = fmt.Errorf("account is managed by an identity provider")
)

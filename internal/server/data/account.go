package data

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/server/models"
)

// CreateAccount creates the account and its default profile. Both rows are
// written in the caller's transaction so an account can never exist without
// a profile.
func CreateAccount(db *gorm.DB, account *models.Account) error {
	if account.Username == "" {
		return fmt.Errorf("username is required")
	}

	if err := add(db, account); err != nil {
		return err
	}

	profile := models.NewProfile(account)
	if err := add(db, profile); err != nil {
		return err
	}

	account.Profile = profile
	return nil
}

// GetAccount returns a single account with its profile and federated flag
// populated.
func GetAccount(db *gorm.DB, selectors ...SelectorFunc) (*models.Account, error) {
	account, err := get[models.Account](db, selectors...)
	if err != nil {
		return nil, err
	}

	if err := loadAccountRelations(db, account); err != nil {
		return nil, err
	}

	return account, nil
}

func loadAccountRelations(db *gorm.DB, account *models.Account) error {
	linked, err := count[models.LinkedIdentity](db, ByAccountID(account.ID))
	if err != nil {
		return err
	}
	account.Federated = linked > 0

	profile, err := get[models.Profile](db, ByAccountID(account.ID))
	switch {
	case errors.Is(err, internal.ErrNotFound):
		// tolerated for accounts written by older versions
	case err != nil:
		return err
	default:
		account.Profile = profile
	}

	return nil
}

func SaveAccount(db *gorm.DB, account *models.Account) error {
	return save(db, account)
}

func SaveProfile(db *gorm.DB, profile *models.Profile) error {
	return save(db, profile)
}

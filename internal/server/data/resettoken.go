package data

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/generate"
	"github.com/shareclass/accounts/internal/server/models"
)

// ResetTokenTTL is the validity window of a password reset token, measured
// from issuance.
const ResetTokenTTL = 10 * time.Minute

// resetTokenMaxAttempts bounds the retries when a freshly generated url
// token collides with another live token.
const resetTokenMaxAttempts = 3

// CreateResetToken issues a reset token for the account. Any existing token
// for the account is overwritten, so at most one token per account is ever
// live; the previous url token stops resolving as soon as the new row is
// written. The url token, entry token, and expiry are written in a single
// statement, so a concurrent reader never sees a partial update.
//
// If the url token collides with another account's live token the issuance
// is retried with fresh randomness, and after resetTokenMaxAttempts the
// collision is surfaced as internal.ErrDuplicate instead of overwriting the
// other account's reset session.
func CreateResetToken(db *gorm.DB, account *models.Account, now time.Time) (*models.ResetToken, error) {
	token, err := get[models.ResetToken](db, ByAccountID(account.ID))
	switch {
	case errors.Is(err, internal.ErrNotFound):
		token = &models.ResetToken{AccountID: account.ID}
	case err != nil:
		return nil, err
	}

	token.ExpiresAt = now.Add(ResetTokenTTL).UTC()

	for attempt := 0; attempt < resetTokenMaxAttempts; attempt++ {
		urlToken, err := generate.ResetURLToken(account.Username, now)
		if err != nil {
			return nil, err
		}
		entryToken, err := generate.EntryToken()
		if err != nil {
			return nil, err
		}

		token.URLToken = urlToken
		token.EntryToken = entryToken

		// nested transaction so that on postgres a unique violation aborts
		// only the savepoint, leaving the request transaction usable for the
		// next attempt
		err = db.Transaction(func(tx *gorm.DB) error {
			return save(tx, token)
		})

		var ucErr UniqueConstraintError
		switch {
		case errors.As(err, &ucErr):
			continue
		case err != nil:
			return nil, err
		}

		return token, nil
	}

	return nil, fmt.Errorf("%w: failed to issue a unique reset token", internal.ErrDuplicate)
}

// GetResetToken returns a token even when it is expired. Callers distinguish
// missing tokens from expired ones.
func GetResetToken(db *gorm.DB, selectors ...SelectorFunc) (*models.ResetToken, error) {
	return get[models.ResetToken](db, selectors...)
}

// DeleteExpiredResetTokens removes tokens past their expiry. Live tokens are
// never touched; a successful reset intentionally leaves its token in place
// until it expires naturally.
func DeleteExpiredResetTokens(db *gorm.DB, now time.Time) error {
	return deleteAll[models.ResetToken](db, ByExpiredBefore(now))
}

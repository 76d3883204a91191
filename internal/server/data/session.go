package data

import (
	"time"

	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal/generate"
	"github.com/shareclass/accounts/internal/server/models"
	"github.com/shareclass/accounts/uid"
)

const sessionTokenLength = 24

// CreateSession establishes a new session for the account. Unlike reset
// tokens, an account may hold any number of concurrent sessions.
func CreateSession(db *gorm.DB, accountID uid.ID, expiresAt time.Time) (*models.Session, error) {
	token, err := generate.CryptoRandom(sessionTokenLength, generate.CharsetAlphaNumeric)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: expiresAt.UTC(),
	}

	if err := add(db, session); err != nil {
		return nil, err
	}

	return session, nil
}

func GetSession(db *gorm.DB, selectors ...SelectorFunc) (*models.Session, error) {
	return get[models.Session](db, selectors...)
}

func DeleteSession(db *gorm.DB, id uid.ID) error {
	return delete[models.Session](db, id)
}

func DeleteSessions(db *gorm.DB, selectors ...SelectorFunc) error {
	return deleteAll[models.Session](db, selectors...)
}

func DeleteExpiredSessions(db *gorm.DB, now time.Time) error {
	return deleteAll[models.Session](db, ByExpiredBefore(now))
}

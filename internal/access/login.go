package access

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/server/data"
	"github.com/shareclass/accounts/internal/server/models"
	"github.com/shareclass/accounts/internal/server/redis"
)

// loginRateLimit is the number of failed attempts per username before a
// lockout with exponential backoff.
const loginRateLimit = 10

// Login verifies the username and password of a local account and starts a
// new session. Federated accounts have no local password and are rejected
// with the same status as bad credentials, but a message pointing at their
// identity provider.
func Login(c *gin.Context, r *redis.Redis, username, password string, sessionDuration time.Duration) (*models.Session, *models.Account, error) {
	rCtx := GetRequestContext(c)
	db := rCtx.DBTxn

	if rCtx.Authenticated.Account != nil {
		return nil, nil, fmt.Errorf("%w: already signed in", internal.ErrBadRequest)
	}

	if err := redis.LoginOK(r, username); err != nil {
		return nil, nil, err
	}

	account, err := data.GetAccount(db, data.ByUsername(username))
	switch {
	case errors.Is(err, internal.ErrNotFound):
		redis.LoginBad(r, username, loginRateLimit)
		return nil, nil, fmt.Errorf("%w: invalid username or password", internal.ErrUnauthorized)
	case err != nil:
		return nil, nil, err
	}

	if account.Federated {
		return nil, nil, fmt.Errorf("%w: this account signs in through its identity provider", internal.ErrUnauthorized)
	}

	credential, err := data.GetCredential(db, data.ByAccountID(account.ID))
	if err != nil {
		return nil, nil, fmt.Errorf("get credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(credential.PasswordHash, []byte(password)); err != nil {
		redis.LoginBad(r, username, loginRateLimit)
		return nil, nil, fmt.Errorf("%w: invalid username or password", internal.ErrUnauthorized)
	}

	redis.LoginGood(r, username)

	session, err := data.CreateSession(db, account.ID, time.Now().Add(sessionDuration))
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return session, account, nil
}

// Logout destroys the caller's session.
func Logout(c *gin.Context) error {
	rCtx := GetRequestContext(c)

	session := rCtx.Authenticated.Session
	if session == nil {
		return fmt.Errorf("%w: no active session", internal.ErrUnauthorized)
	}

	return data.DeleteSession(rCtx.DBTxn, session.ID)
}

package access

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/server/data"
	"github.com/shareclass/accounts/internal/server/models"
)

// Signup creates a local account with a credential derived from the password,
// and signs the new account in. The account, its profile, and its credential
// are created in the request's transaction, so a failure leaves no partial
// account behind.
func Signup(c *gin.Context, username, password string, sessionDuration time.Duration) (*models.Account, *models.Session, error) {
	rCtx := GetRequestContext(c)
	db := rCtx.DBTxn

	if rCtx.Authenticated.Account != nil {
		return nil, nil, fmt.Errorf("%w: already signed in", internal.ErrBadRequest)
	}

	account := &models.Account{Username: username}
	if err := data.CreateAccount(db, account); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("generate from password: %w", err)
	}

	credential := &models.Credential{
		AccountID:    account.ID,
		PasswordHash: hash,
	}
	if err := data.CreateCredential(db, credential); err != nil {
		return nil, nil, fmt.Errorf("create credential: %w", err)
	}

	session, err := data.CreateSession(db, account.ID, time.Now().Add(sessionDuration))
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return account, session, nil
}

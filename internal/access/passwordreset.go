package access

import (
	"crypto/subtle"
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

// resetRequestRateLimit is the number of reset emails per address per minute.
const resetRequestRateLimit = 3

// PasswordResetRequest issues a reset token for the account registered with
// the email address. A token already live for the account is overwritten, so
// repeated requests leave exactly one usable reset link.
//
// Signed-in callers are rejected; the reset flow exists for accounts that
// cannot sign in. Federated accounts are rejected too since they have no
// local password to reset.
func PasswordResetRequest(c *gin.Context, r *redis.Redis, email string) (*models.ResetToken, *models.Account, error) {
	rCtx := GetRequestContext(c)
	db := rCtx.DBTxn

	if rCtx.Authenticated.Account != nil {
		return nil, nil, fmt.Errorf("%w: already signed in", internal.ErrBadRequest)
	}

	if err := redis.RateOK(r, "rate:reset:"+email, resetRequestRateLimit); err != nil {
		return nil, nil, err
	}

	account, err := data.GetAccount(db, data.ByUsername(email))
	if err != nil {
		return nil, nil, err
	}

	if account.Federated {
		return nil, nil, fmt.Errorf("%w: password is managed by the identity provider", internal.ErrFederatedAccount)
	}

	token, err := data.CreateResetToken(db, account, time.Now())
	if err != nil {
		return nil, nil, err
	}

	return token, account, nil
}

// GetResetToken resolves the long token from a reset link. Reading the token
// never mutates it; opening the link any number of times leaves the reset
// session intact. Like consumption, resolving a link is rejected for
// signed-in callers.
func GetResetToken(c *gin.Context, urlToken string) (*models.ResetToken, error) {
	rCtx := GetRequestContext(c)

	if rCtx.Authenticated.Account != nil {
		return nil, fmt.Errorf("%w: already signed in", internal.ErrBadRequest)
	}

	token, err := data.GetResetToken(rCtx.DBTxn, data.ByURLToken(urlToken))
	if err != nil {
		return nil, err
	}

	if token.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: password reset link has expired", internal.ErrExpired)
	}

	return token, nil
}

// ResetPassword sets a new password for the account that owns the reset
// token. The entry token from the email body and the password confirmation
// must both match; a failure of either is reported as the same error so the
// response does not reveal which check failed. The reset token is left in
// place and stays usable until it expires.
func ResetPassword(c *gin.Context, urlToken, entryToken, newPassword, confirmNewPassword string) (*models.Account, error) {
	rCtx := GetRequestContext(c)
	db := rCtx.DBTxn

	if rCtx.Authenticated.Account != nil {
		return nil, fmt.Errorf("%w: already signed in", internal.ErrBadRequest)
	}

	token, err := GetResetToken(c, urlToken)
	if err != nil {
		return nil, err
	}

	entryOK := subtle.ConstantTimeCompare([]byte(token.EntryToken), []byte(entryToken)) == 1
	if !entryOK || newPassword != confirmNewPassword {
		return nil, fmt.Errorf("%w: entry token or password confirmation did not match", internal.ErrBadRequest)
	}

	account, err := data.GetAccount(db, data.ByID(token.AccountID))
	if err != nil {
		return nil, err
	}

	if account.Federated {
		return nil, fmt.Errorf("%w: password is managed by the identity provider", internal.ErrFederatedAccount)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generate from password: %w", err)
	}

	credential, err := data.GetCredential(db, data.ByAccountID(account.ID))
	switch {
	case errors.Is(err, internal.ErrNotFound):
		credential = &models.Credential{AccountID: account.ID, PasswordHash: hash}
		if err := data.CreateCredential(db, credential); err != nil {
			return nil, fmt.Errorf("create credential: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("get credential: %w", err)
	default:
		credential.PasswordHash = hash
		if err := data.SaveCredential(db, credential); err != nil {
			return nil, fmt.Errorf("save credential: %w", err)
		}
	}

	return account, nil
}

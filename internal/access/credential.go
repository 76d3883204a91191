package access

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/server/data"
	"github.com/shareclass/accounts/internal/validate"
)

// UpdateCredential changes the password of the authenticated account. The
// current password must verify against the stored hash, and the account must
// be local. On success the caller's session is destroyed, so the new password
// must be used to sign in again.
func UpdateCredential(c *gin.Context, currentPassword, newPassword, confirmNewPassword string) error {
	rCtx := GetRequestContext(c)
	db := rCtx.DBTxn
	account := rCtx.Authenticated.Account

	if account.Federated {
		return fmt.Errorf("%w: password is managed by the identity provider", internal.ErrFederatedAccount)
	}

	credential, err := data.GetCredential(db, data.ByAccountID(account.ID))
	if err != nil {
		return fmt.Errorf("get credential: %w", err)
	}

	errs := make(validate.Error)

	if err := bcrypt.CompareHashAndPassword(credential.PasswordHash, []byte(currentPassword)); err != nil {
		errs["current_password"] = append(errs["current_password"], "invalid password")
		return errs
	}

	if newPassword != confirmNewPassword {
		errs["confirm_new_password"] = append(errs["confirm_new_password"], "passwords do not match")
		return errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("generate from password: %w", err)
	}

	credential.PasswordHash = hash
	if err := data.SaveCredential(db, credential); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	return data.DeleteSession(db, rCtx.Authenticated.Session.ID)
}

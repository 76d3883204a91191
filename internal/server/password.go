package server

import (
	"github.com/gin-gonic/gin"

	"github.com/shareclass/accounts/api"
	"github.com/shareclass/accounts/internal/access"
)

// ChangePassword updates the caller's password. On success the session that
// made the request is destroyed, so the account must sign in again with the
// new password.
func (a *API) ChangePassword(c *gin.Context, r *api.ChangePasswordRequest) (*api.EmptyResponse, error) {
	err := access.UpdateCredential(c, r.CurrentPassword, r.NewPassword, r.ConfirmNewPassword)
	if err != nil {
		return nil, err
	}

	deleteAuthCookie(c)

	return &api.EmptyResponse{}, nil
}

package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/shareclass/accounts/api"
	"github.com/shareclass/accounts/internal/access"
	"github.com/shareclass/accounts/internal/logging"
	"github.com/shareclass/accounts/internal/server/email"
)

// ForgotPassword issues a password reset token and mails the reset link to
// the account's email address. The mail is best effort; a delivery failure is
// logged and does not fail the request, and the token from this request stays
// live until it expires or a later request overwrites it.
func (a *API) ForgotPassword(c *gin.Context, r *api.ForgotPasswordRequest) (*api.EmptyResponse, error) {
	token, account, err := access.PasswordResetRequest(c, a.server.redis, r.Email)
	if err != nil {
		return nil, err
	}

	nickname := email.BuildNameFromEmail(account.Username)
	if account.Profile != nil && account.Profile.Nickname != "" {
		nickname = account.Profile.Nickname
	}

	err = email.SendPasswordResetEmail(nickname, account.Username, email.PasswordResetData{
		Nickname:   nickname,
		Link:       fmt.Sprintf("%s/reset_password/%s", email.AppDomain, token.URLToken),
		EntryToken: token.EntryToken,
		ExpiresAt:  token.ExpiresAt,
	})
	if err != nil {
		logging.Errorf("sending password reset email: %s", err)
	}

	return &api.EmptyResponse{}, nil
}

// GetResetPassword resolves a reset link. It reports whether the link is
// still usable and never changes the state of the token, so a mail client
// prefetching the link cannot consume it.
func (a *API) GetResetPassword(c *gin.Context, r *api.GetResetPasswordRequest) (*api.EmptyResponse, error) {
	if _, err := access.GetResetToken(c, r.Token); err != nil {
		return nil, err
	}
	return &api.EmptyResponse{}, nil
}

// ResetPassword sets a new password using a reset token from a forgot
// password email.
func (a *API) ResetPassword(c *gin.Context, r *api.ResetPasswordRequest) (*api.UserResponse, error) {
	account, err := access.ResetPassword(c, r.Token, r.EntryToken, r.NewPassword, r.ConfirmNewPassword)
	if err != nil {
		return nil, err
	}

	return account.ToAPI(), nil
}

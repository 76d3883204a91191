package server

import (
	"github.com/gin-gonic/gin"

	"github.com/shareclass/accounts/api"
	"github.com/shareclass/accounts/internal/access"
	"github.com/shareclass/accounts/internal/validate"
)

// Signup registers a new local account and signs it in.
func (a *API) Signup(c *gin.Context, r *api.SignupRequest) (*api.UserResponse, error) {
	if r.Password != r.ConfirmPassword {
		return nil, validate.Error{"confirm_password": {"passwords do not match"}}
	}

	account, session, err := access.Signup(c, r.Username, r.Password, a.server.options.SessionDuration)
	if err != nil {
		return nil, err
	}

	setAuthCookie(c, session.Token, session.ExpiresAt)

	return account.ToAPI(), nil
}

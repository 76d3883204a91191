package server

import (
	"github.com/gin-gonic/gin"

	"github.com/shareclass/accounts/api"
	"github.com/shareclass/accounts/internal/access"
)

func (a *API) Login(c *gin.Context, r *api.LoginRequest) (*api.UserResponse, error) {
	session, account, err := access.Login(c, a.server.redis, r.Username, r.Password, a.server.options.SessionDuration)
	if err != nil {
		return nil, err
	}

	setAuthCookie(c, session.Token, session.ExpiresAt)

	return account.ToAPI(), nil
}

func (a *API) Logout(c *gin.Context, _ *api.EmptyRequest) (*api.EmptyResponse, error) {
	if err := access.Logout(c); err != nil {
		return nil, err
	}

	deleteAuthCookie(c)

	return &api.EmptyResponse{}, nil
}

// Info describes the caller. It never fails for anonymous callers; they get
// Authenticated false.
func (a *API) Info(c *gin.Context, _ *api.EmptyRequest) (*api.InfoResponse, error) {
	account := access.GetRequestContext(c).Authenticated.Account
	if account == nil {
		return &api.InfoResponse{}, nil
	}

	resp := &api.InfoResponse{
		Authenticated: true,
		Username:      account.Username,
	}
	if account.Profile != nil {
		resp.Nickname = account.Profile.Nickname
	}
	return resp, nil
}

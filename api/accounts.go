package api

import (
	"github.com/shareclass/accounts/internal/validate"
	"github.com/shareclass/accounts/uid"
)

type EmptyRequest struct{}

func (r EmptyRequest) ValidationRules() []validate.ValidationRule { return nil }

type EmptyResponse struct{}

// SignupRequest registers a new local account. The username must be an email
// address; it doubles as the destination for password reset mail.
type SignupRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (r SignupRequest) ValidationRules() []validate.ValidationRule {
	return []validate.ValidationRule{
		validate.Required("username", r.Username),
		validate.Email("username", r.Username),
		validate.Required("password", r.Password),
		validate.Password("password", r.Password),
		validate.Required("confirm_password", r.ConfirmPassword),
	}
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) ValidationRules() []validate.ValidationRule {
	return []validate.ValidationRule{
		validate.Required("username", r.Username),
		validate.Required("password", r.Password),
	}
}

type UserResponse struct {
	ID       uid.ID `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

// InfoResponse describes the caller. Anonymous callers get Authenticated
// false and empty identity fields.
type InfoResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" form:"current_password"`
	NewPassword        string `json:"new_password" form:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password" form:"confirm_new_password"`
}

func (r ChangePasswordRequest) ValidationRules() []validate.ValidationRule {
	return []validate.ValidationRule{
		validate.Required("current_password", r.CurrentPassword),
		validate.Required("new_password", r.NewPassword),
		validate.Password("new_password", r.NewPassword),
		validate.Required("confirm_new_password", r.ConfirmNewPassword),
	}
}

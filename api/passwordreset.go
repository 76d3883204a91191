package api

import (
	"github.com/shareclass/accounts/internal/validate"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

func (r ForgotPasswordRequest) ValidationRules() []validate.ValidationRule {
	return []validate.ValidationRule{
		validate.Required("email", r.Email),
		validate.Email("email", r.Email),
	}
}

// GetResetPasswordRequest carries the url token of a reset link. Handling it
// must never change the state of the token.
type GetResetPasswordRequest struct {
	Token string `uri:"token"`
}

func (r GetResetPasswordRequest) ValidationRules() []validate.ValidationRule {
	return []validate.ValidationRule{
		validate.Required("token", r.Token),
	}
}

type ResetPasswordRequest struct {
	Token              string `uri:"token" json:"-"`
	NewPassword        string `json:"new_password" form:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password" form:"confirm_new_password"`
	EntryToken         string `json:"entry_token" form:"entry_token"`
}

func (r ResetPasswordRequest) ValidationRules() []validate.ValidationRule {
	return []validate.ValidationRule{
		validate.Required("token", r.Token),
		validate.Required("new_password", r.NewPassword),
		validate.Password("new_password", r.NewPassword),
		validate.Required("confirm_new_password", r.ConfirmNewPassword),
		validate.Required("entry_token", r.EntryToken),
	}
}

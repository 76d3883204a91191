package validate

const (
	PasswordMinLength = 6
	PasswordMaxLength = 20
)

// Password validates a field against the account password policy: 6 to 20
// characters, ASCII letters and digits only. The same policy applies to
// sign up, change password, and reset password.
func Password(name string, value string) ValidationRule {
	return StringRule{
		Name:            name,
		Value:           value,
		MinLength:       PasswordMinLength,
		MaxLength:       PasswordMaxLength,
		CharacterRanges: AlphaNumeric,
	}
}

// PasswordIsValid reports whether password satisfies the password policy.
func PasswordIsValid(password string) bool {
	if password == "" {
		return false
	}
	return Password("password", password).Validate() == nil
}

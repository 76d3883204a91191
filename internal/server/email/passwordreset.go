package email

import "time"

type PasswordResetData struct {
	Nickname   string
	Link       string
	EntryToken string
	ExpiresAt  time.Time
}

func SendPasswordResetEmail(name, address string, data PasswordResetData) error {
	return SendTemplate(name, address, "Reset your Share Class password", "passwordreset", data)
}

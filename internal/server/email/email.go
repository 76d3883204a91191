package email

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shareclass/accounts/internal/logging"
)

var (
	// AppDomain is the base of the links embedded in outgoing mail.
	AppDomain   = "https://shareclass.jielite.tw"
	FromAddress = "service@jielite.tw"
	FromName    = "Share Class"

	SendgridAPIKey = os.Getenv("SENDGRID_API_KEY")
	SMTPServer     = "smtp.sendgrid.net:465"

	// TestMode prevents any mail from leaving the process and records the
	// template data in TestDataSent instead.
	TestMode     = false
	TestDataSent = []any{}

	ErrUnknownTemplate = errors.New("unknown template")
	ErrNotConfigured   = errors.New("email sending not configured")
)

func IsConfigured() bool {
	return len(SendgridAPIKey) > 0
}

// BuildNameFromEmail guesses a display name from the local part of an email
// address.
func BuildNameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	name, _, _ = strings.Cut(name, ".")
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name
}

// SendTemplate renders the plain and html variants of the named template and
// sends the result as a single multipart message.
func SendTemplate(name, address, subject, template string, data any) error {
	if TestMode {
		logging.Debugf("sent email to %q: %+v", address, data)
		TestDataSent = append(TestDataSent, data)
		return nil // quietly return
	}

	if !IsConfigured() {
		return ErrNotConfigured
	}

	plain := &bytes.Buffer{}
	if err := textTemplateList.ExecuteTemplate(plain, template+".text.plain", data); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, err)
	}

	html := &bytes.Buffer{}
	if err := htmlTemplateList.ExecuteTemplate(html, template+".text.html", data); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, err)
	}

	msg := Message{
		FromName:    FromName,
		FromAddress: FromAddress,
		ToName:      name,
		ToAddress:   address,
		Subject:     subject,
		PlainBody:   plain.Bytes(),
		HTMLBody:    html.Bytes(),
	}

	if UseSMTP {
		return SendSMTP(msg)
	}
	return SendAPI(msg)
}

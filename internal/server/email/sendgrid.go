package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// UseSMTP switches delivery from the SendGrid HTTP API to the SMTP relay.
var UseSMTP = false

// SendAPI sends a message through the SendGrid v3 mail API.
func SendAPI(msg Message) error {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.FromAddress))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(msg.ToName, msg.ToAddress))
	m.AddPersonalizations(p)

	// the plain part must precede the html part
	m.AddContent(mail.NewContent("text/plain", string(msg.PlainBody)))
	m.AddContent(mail.NewContent("text/html", string(msg.HTMLBody)))

	request := sendgrid.GetRequest(SendgridAPIKey, "/v3/mail/send", "https://api.sendgrid.com")
	request.Method = "POST"
	request.Body = mail.GetRequestBody(m)

	response, err := sendgrid.API(request)
	if err != nil {
		return err
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid api responded with status code %d", response.StatusCode)
	}
	return nil
}

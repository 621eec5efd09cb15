package utils

import (
	"aula/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid. A missing API key turns
// the call into a logged no-op so local setups work without credentials.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("SendGrid disabled, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Aula", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	return nil
}

// SendActivationEmail mails the activation code for a freshly assigned course
func SendActivationEmail(toName, toEmail, courseTitle, activationCode string) error {
	subject := fmt.Sprintf("Your access to %s", courseTitle)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You have been assigned the course <b>%s</b>.</p>
		<p>Activate it with this code:</p>
		<h2 style="letter-spacing:3px">%s</h2>
		<p>The code can be used once and only by your account.</p>`,
		toName, courseTitle, activationCode)
	return SendEmail(toName, toEmail, subject, body)
}

// Package mail sends the application's transactional mails over SMTP.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends each message with a fresh dial, once, with no retries. A
// delivery failure is surfaced to the caller.
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewSMTPMailer(host string, port int, sender, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
	}
}

func (m *SMTPMailer) SendConfirmation(to, confirmURL string) error {
	return m.send(to, "Please confirm your email!",
		fmt.Sprintf("Please click the following link to confirm your email: %s", confirmURL))
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	return m.send(to, "Password Reset Request",
		fmt.Sprintf("You are receiving this email because you (or someone else) has requested the reset of a password. "+
			"Please make a PUT request to: \n\n %s", resetURL))
}

func (m *SMTPMailer) SendPasswordChanged(to string) error {
	return m.send(to, "Password Changed Successfully",
		"Your password has been changed successfully.")
}

func (m *SMTPMailer) SendCancellation(to, username string) error {
	return m.send(to, "Sorry to see you go!",
		fmt.Sprintf("Goodbye, %s. We hope to see you back soon.", username))
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail, %w", err)
	}

	return nil
}

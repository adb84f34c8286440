package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// Sender delivers mail over SMTP with implicit TLS (port 465 style).
type Sender struct {
	smtpHost string
	smtpPort string
	username string
	password string
}

// NewSender creates a Sender for the given SMTP relay.
func NewSender(host, port, user, pass string) *Sender {
	return &Sender{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
	}
}

// SendVerification delivers the email-confirmation link to a new account.
func (s *Sender) SendVerification(to, link string) error {
	subject := "Verification Email From Reppup"
	body := fmt.Sprintf(
		`<p>Please verify your email by clicking the link below:</p><p><a href="%s">Verify Email</a></p>`,
		link,
	)
	return s.send(to, subject, body)
}

func (s *Sender) send(to, subject, body string) error {
	from := s.username
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" + // required for HTML
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := s.smtpHost + ":" + s.smtpPort

	// Implicit TLS for port 465
	tlsConfig := &tls.Config{
		ServerName: s.smtpHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.username, s.password, s.smtpHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

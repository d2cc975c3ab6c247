package mailer

import (
	"gopkg.in/gomail.v2"
)

// SMTPSender sends seller notifications through a plain SMTP account.
type SMTPSender struct {
	host     string
	port     int
	email    string
	password string
}

func NewSMTPSender(host string, port int, email, password string) *SMTPSender {
	return &SMTPSender{host: host, port: port, email: email, password: password}
}

func (s *SMTPSender) SendEmail(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.email)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.email, s.password)
	return d.DialAndSend(m)
}

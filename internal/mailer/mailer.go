// Package mailer sends application emails over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// ErrNotConfigured indicates SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP not configured (SMTP_HOST / SMTP_USER / SMTP_PASSWORD)")

// Sender abstracts gomail dial-and-send so tests can capture messages.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends cover letters by email through an SMTP relay.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string

	// Dialer is built from the fields above when nil.
	Dialer Sender
}

// New constructs a Mailer. Port defaults to 587 when zero.
func New(host string, port int, username, password, from, fromName string) *Mailer {
	if port == 0 {
		port = 587
	}
	if from == "" {
		from = username
	}
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		FromName: fromName,
	}
}

func (m *Mailer) sender() Sender {
	if m.Dialer != nil {
		return m.Dialer
	}
	return gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
}

// SendApplication emails the cover letter to the recipient.
func (m *Mailer) SendApplication(ctx context.Context, to, company, title, letter string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Host == "" || m.Username == "" || m.Password == "" {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.From, m.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", Subject(company, title))
	msg.SetBody("text/plain", plainBody(letter, m.FromName))
	msg.AddAlternative("text/html", HTMLBody(letter, m.FromName))

	if err := m.sender().DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// Subject builds the application email subject line.
func Subject(company, title string) string {
	return fmt.Sprintf("Candidature - Poste %s chez %s", title, company)
}

func plainBody(letter, fromName string) string {
	var b strings.Builder
	b.WriteString(letter)
	b.WriteString("\n\nBien cordialement,\n")
	b.WriteString(fromName)
	return b.String()
}

// HTMLBody wraps the letter paragraphs in a minimal HTML layout.
func HTMLBody(letter, fromName string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto; color: #1f2937; line-height: 1.6;">`)
	for _, para := range strings.Split(letter, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	b.WriteString("<p>Bien cordialement,<br><strong>")
	b.WriteString(html.EscapeString(fromName))
	b.WriteString("</strong></p>")
	b.WriteString("</div>")
	return b.String()
}

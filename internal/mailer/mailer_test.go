package mailer

import (
	"context"
	"strings"
	"testing"

	gomail "gopkg.in/gomail.v2"
)

type captureSender struct {
	messages []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return nil
}

func TestSendApplicationNotConfigured(t *testing.T) {
	m := New("", 0, "", "", "", "")
	err := m.SendApplication(context.Background(), "hr@acme.test", "Acme", "Dev Go", "Bonjour")
	if err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSendApplicationBuildsMessage(t *testing.T) {
	cap := &captureSender{}
	m := New("smtp.test", 587, "me@test", "secret", "me@test", "Jean Dupont")
	m.Dialer = cap

	err := m.SendApplication(context.Background(), "hr@acme.test", "Acme", "Développeur Go", "Premier paragraphe.\n\nSecond paragraphe.")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(cap.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(cap.messages))
	}
	msg := cap.messages[0]
	if got := msg.GetHeader("Subject"); len(got) != 1 || got[0] != "Candidature - Poste Développeur Go chez Acme" {
		t.Fatalf("unexpected subject %v", got)
	}
	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "hr@acme.test" {
		t.Fatalf("unexpected recipient %v", got)
	}
}

func TestHTMLBodyEscapesAndSplits(t *testing.T) {
	body := HTMLBody("Para <1>.\n\nPara 2.", "Jean")
	if !strings.Contains(body, "Para &lt;1&gt;.") {
		t.Fatalf("expected escaped paragraph, got %s", body)
	}
	if strings.Count(body, "<p>") != 3 {
		t.Fatalf("expected 3 paragraphs (2 body + signature), got %s", body)
	}
	if !strings.Contains(body, "Bien cordialement") {
		t.Fatalf("missing signature: %s", body)
	}
}

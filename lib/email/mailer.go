package email

import (
	"fmt"
	"net/smtp"

	"skgroup/lib/models"
)

// Config holds SMTP settings for outbound notifications.
type Config struct {
	Enabled  bool
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Mailer sends enquiry notifications over SMTP. When disabled (local and
// test environments) sends are no-ops reported as success.
type Mailer struct {
	cfg Config
}

// NewMailer creates a new Mailer.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// IsEnabled reports whether outbound email is configured.
func (m *Mailer) IsEnabled() bool {
	return m.cfg.Enabled
}

// SendEnquiryNotification notifies the routed division mailbox about a new
// contact enquiry.
func (m *Mailer) SendEnquiryNotification(to, referenceID string, enquiry *models.ContactEnquiry) error {
	subject := fmt.Sprintf("New Enquiry %s: %s", referenceID, enquiry.Subject)
	body := fmt.Sprintf(`New enquiry received.

Reference ID: %s
Name: %s
Email: %s
Phone: %s
City: %s
Division: %s
Subject: %s

Message:
%s
`, referenceID, enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.City,
		enquiry.Division, enquiry.Subject, enquiry.Message)

	return m.send(to, subject, body)
}

// SendEnquiryConfirmation acknowledges the submission to the visitor with
// their reference id.
func (m *Mailer) SendEnquiryConfirmation(to, referenceID string) error {
	subject := "We received your enquiry"
	body := fmt.Sprintf(`Thank you for contacting SK Group.

Your enquiry has been received and assigned reference id %s.
Please quote this id in any follow-up, including payments.

SK Group Connections
`, referenceID)

	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.cfg.Enabled {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

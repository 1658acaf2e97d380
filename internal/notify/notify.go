// Package notify delivers renewal reminders by email.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"vendorhub/internal/analytics"
	"vendorhub/internal/reminder"

	"gopkg.in/gomail.v2"
)

// Message is one outgoing email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends mail through an SMTP relay with gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender returns a sender for cfg.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func buildMessage(from string, m Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", m.To...)
	gm.SetHeader("Subject", m.Subject)
	gm.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		gm.AddAlternative("text/html", m.HTML)
	}
	return gm
}

// Send dials the relay for each message. ctx is checked before dialing only;
// gomail has no context support.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if len(m.To) == 0 {
		return fmt.Errorf("send %q: no recipients", m.Subject)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(buildMessage(s.from, m)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", strings.Join(m.To, ","), err)
	}
	return nil
}

var reminderHTML = template.Must(template.New("reminder").Parse(`<p>{{.SubscriptionName}} from {{.VendorName}} renews on <strong>{{.RenewalDate}}</strong> ({{.When}}).</p>
<p>Cost: {{.Cost}} {{.Currency}}</p>
{{if not .AutoRenew}}<p><strong>Auto-renew is off.</strong> This subscription needs a manual renewal.</p>{{end}}
<p>Organization: {{.OrganizationName}}</p>
`))

func when(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// ReminderMessage renders a queued reminder job as an email.
func ReminderMessage(job reminder.Job) (Message, error) {
	subject := fmt.Sprintf("%s renews %s", job.SubscriptionName, when(job.DaysUntilRenewal))
	switch job.Urgency {
	case analytics.UrgencyOverdue:
		subject = fmt.Sprintf("Overdue: %s renewal was due %s", job.SubscriptionName, job.RenewalDate)
	case analytics.UrgencyUrgent:
		subject = "Action needed: " + subject
	}
	if !job.AutoRenew {
		subject += " (manual renewal)"
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s from %s renews on %s (%s).\n", job.SubscriptionName, job.VendorName, job.RenewalDate, when(job.DaysUntilRenewal))
	fmt.Fprintf(&text, "Cost: %s %s\n", job.Cost, job.Currency)
	if !job.AutoRenew {
		text.WriteString("Auto-renew is off. This subscription needs a manual renewal.\n")
	}
	fmt.Fprintf(&text, "Organization: %s\n", job.OrganizationName)

	var html bytes.Buffer
	data := struct {
		reminder.Job
		When string
	}{job, when(job.DaysUntilRenewal)}
	if err := reminderHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render reminder: %w", err)
	}

	return Message{To: job.Recipients, Subject: subject, Text: text.String(), HTML: html.String()}, nil
}

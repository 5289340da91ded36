package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

var (
	ErrMailDisabled   = errors.New("report mail is not configured")
	ErrInvalidAddress = errors.New("invalid mail address")
)

// Mailer delivers a prepared message.
type Mailer interface {
	Send(ctx context.Context, msg *mail.Msg) error
}

// SMTPMailer submits messages to the configured SMTP server.
type SMTPMailer struct {
	settings MailSettings
}

func NewSMTPMailer(s MailSettings) *SMTPMailer {
	return &SMTPMailer{settings: s}
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.settings.Port),
		mail.WithTimeout(30 * time.Second),
	}

	switch m.settings.TLSPolicy {
	case "opportunistic":
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	case "none":
		opts = append(opts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}
	if m.settings.SSL {
		opts = append(opts, mail.WithSSL())
	}
	if m.settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.settings.Username),
			mail.WithPassword(m.settings.Password),
		)
	}

	c, err := mail.NewClient(m.settings.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return c, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg *mail.Msg) error {
	c, err := m.client()
	if err != nil {
		return err
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail via %s: %w", m.settings.Host, err)
	}
	return nil
}

func reportFilename(month time.Time) string {
	return "mood-report-" + month.Format("2006-01") + ".pdf"
}

// BuildReportMessage wraps a report PDF in a mail addressed to one recipient.
func BuildReportMessage(from, to string, month time.Time, pdf []byte) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("%w: sender %q: %v", ErrInvalidAddress, from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("%w: recipient %q: %v", ErrInvalidAddress, to, err)
	}

	label := month.Format("January 2006")
	msg.Subject("Mood report " + label)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Attached is your mood report for %s: the month's chart and every entry.\n", label))

	if err := msg.AttachReader(reportFilename(month), bytes.NewReader(pdf)); err != nil {
		return nil, fmt.Errorf("attach report: %w", err)
	}
	return msg, nil
}

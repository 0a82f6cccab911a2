// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify emails the site owner when a lead arrives through the
// contact form or the catalog download form. A nil *Mailer is valid and
// sends nothing, which is how notifications are disabled.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"catalogweb/internal/models"
)

// Config holds the SMTP relay and addressing settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string // site owner inbox
	BaseURL  string // used for links back to the admin API
}

// Mailer sends lead notifications over SMTP.
type Mailer struct {
	cfg  Config
	send func(ctx context.Context, msg *mail.Msg) error
}

// New returns a Mailer, or nil when no SMTP host or recipient is
// configured.
func New(cfg Config) *Mailer {
	if cfg.Host == "" || cfg.To == "" {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	m := &Mailer{cfg: cfg}
	m.send = m.dialAndSend
	return m
}

// dialAndSend opens a connection to the relay for a single message.
func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(15 * time.Second),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
			mail.WithTLSPolicy(mail.TLSMandatory),
		)
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// newMessage builds a plain-text message to the site owner with Reply-To
// set to the lead, so answering the notification reaches the customer.
func (m *Mailer) newMessage(subject, replyTo, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	if replyTo != "" {
		// A malformed lead address must not block the notification.
		_ = msg.ReplyTo(replyTo)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (m *Mailer) contactMessage(c *models.Contact) (*mail.Msg, error) {
	subject := "New contact message"
	if c.Subject != "" {
		subject += ": " + c.Subject
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name:    %s\n", c.Name)
	fmt.Fprintf(&b, "Email:   %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", c.Phone)
	}
	if c.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", c.Subject)
	}
	fmt.Fprintf(&b, "\n%s\n", c.Message)
	if m.cfg.BaseURL != "" {
		fmt.Fprintf(&b, "\n%s/api/contacts/%s\n", m.cfg.BaseURL, c.ID)
	}

	return m.newMessage(subject, c.Email, b.String())
}

func (m *Mailer) enquiryMessage(e *models.CatalogEnquiry) (*mail.Msg, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s downloaded the catalog for %s.\n\n", e.Name, e.Document)
	fmt.Fprintf(&b, "Name:  %s\n", e.Name)
	fmt.Fprintf(&b, "Email: %s\n", e.Email)
	if e.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", e.Phone)
	}
	if m.cfg.BaseURL != "" {
		fmt.Fprintf(&b, "\n%s/api/catalog-enquiries/%s\n", m.cfg.BaseURL, e.ID)
	}

	return m.newMessage("Catalog download: "+e.Document, e.Email, b.String())
}

// ContactReceived notifies the site owner about a contact form message.
func (m *Mailer) ContactReceived(ctx context.Context, c *models.Contact) error {
	if m == nil {
		return nil
	}
	msg, err := m.contactMessage(c)
	if err != nil {
		return fmt.Errorf("build contact notification: %w", err)
	}
	return m.send(ctx, msg)
}

// EnquiryReceived notifies the site owner about a catalog download.
func (m *Mailer) EnquiryReceived(ctx context.Context, e *models.CatalogEnquiry) error {
	if m == nil {
		return nil
	}
	msg, err := m.enquiryMessage(e)
	if err != nil {
		return fmt.Errorf("build enquiry notification: %w", err)
	}
	return m.send(ctx, msg)
}

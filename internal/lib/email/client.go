// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders
// bodies from HTML templates embedded in the binary.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/config"
)

//go:embed templates/*.html
var templates embed.FS

// ItemEvent is the data rendered into an item notification.
type ItemEvent struct {
	Type       string
	ItemID     int64
	Name       string
	OccurredAt time.Time
}

// Sender is the part of the Resend client used here.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	sender Sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client with the API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return NewClientWithSender(resend.NewClient(cfg.Integration.ResendAPIKey).Emails, cfg.Integration.FromEmail, logger)
}

// NewClientWithSender creates a Client on top of an arbitrary Sender.
func NewClientWithSender(sender Sender, from string, logger *zerolog.Logger) *Client {
	return &Client{
		sender: sender,
		from:   from,
		logger: logger,
	}
}

// Render executes templateName with data.
func Render(templateName Template, data any) (string, error) {
	tmpl, err := template.ParseFS(templates, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail sends an email with HTML rendered from a template.
func (c *Client) SendEmail(to, subject string, templateName Template, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.sender.Send(params); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("to", to).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}

// SendItemEvent sends the notification matching event.Type.
func (c *Client) SendItemEvent(to string, event ItemEvent) error {
	templateName, ok := templateForEvent[event.Type]
	if !ok {
		return fmt.Errorf("no email template for event %q", event.Type)
	}

	subject := fmt.Sprintf("Item #%d %s", event.ItemID, subjectVerb[templateName])
	return c.SendEmail(to, subject, templateName, event)
}

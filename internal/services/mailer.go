package services

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/resend/resend-go/v2"
)

// Mailer delivers sign-in links. The dashboard has no passwords; an emailed
// link is the only way in.
type Mailer interface {
	SendMagicLink(ctx context.Context, email string, link string) error
}

// ResendMailer sends magic-link emails through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey string, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (mailer *ResendMailer) SendMagicLink(ctx context.Context, email string, link string) error {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Sign in to Attendly</h2>
  <p>Click the link below to sign in. This link expires in 24 hours.</p>
  <p><a href="%s">Sign In</a></p>
  <p style="color: #666; font-size: 12px;">If you didn't request this email, you can safely ignore it.</p>
</div>`, link)

	request := &resend.SendEmailRequest{
		From:    mailer.from,
		To:      []string{email},
		Subject: "Sign in to Attendly",
		Html:    html,
	}
	if _, err := mailer.client.Emails.SendWithContext(ctx, request); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

// LogMailer prints links to the process log instead of emailing them. Used
// when no mail API key is configured, mostly in development.
type LogMailer struct{}

func (LogMailer) SendMagicLink(_ context.Context, email string, link string) error {
	log.Printf("magic link for %s: %s", email, link)
	return nil
}

// BuildMagicLink assembles the verification URL handed to the mailer.
func BuildMagicLink(baseURL string, token string, email string) string {
	return fmt.Sprintf("%s/api/auth/verify?token=%s&email=%s", baseURL, url.QueryEscape(token), url.QueryEscape(email))
}

// Package email, Resend üzerinden transactional e-posta gönderimini sarar.
package email

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v3"
)

// Mailer, e-posta gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır — testlerde fake kullanılır,
// RESEND_API_KEY yoksa nil geçilir ve gönderim sessizce atlanır.
type Mailer interface {
	SendVerificationEmail(to, name, token string) error
}

// resendMailer, Mailer interface'inin Resend implementasyonu.
type resendMailer struct {
	client *resend.Client
	from   string
	appURL string
}

// NewResendMailer, constructor — interface döner.
func NewResendMailer(apiKey, from, appURL string) Mailer {
	return &resendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		appURL: appURL,
	}
}

// SendVerificationEmail, kayıt sonrası doğrulama linkini gönderir.
func (m *resendMailer) SendVerificationEmail(to, name, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", m.appURL, token)

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Verify your Exposia account",
		Html: fmt.Sprintf(
			`<p>Hi %s,</p>
			<p>Welcome to Exposia! Click the link below to verify your email address:</p>
			<p><a href="%s">Verify email</a></p>
			<p>If you did not create this account, you can ignore this email.</p>`,
			name, verifyURL,
		),
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	log.Printf("[email] verification email sent to %s (id=%s)", to, sent.Id)
	return nil
}

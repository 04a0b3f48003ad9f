// Package mail sends transactional email. The SMTP mailer is used in
// production; when SMTP credentials are absent the application falls back to
// the log mailer so signup still works in development.
package mail

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
)

// Mailer delivers account emails. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, username, confirmURL string) error
}

const confirmationSubject = "Confirm your account"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Welcome, {{.Username}}!</h2>
	<p>Thank you for signing up. Please confirm your account by clicking the button below:</p>
	<p>
		<a href="{{.ConfirmURL}}"
		   style="background-color: #4CAF50; color: white; padding: 12px 24px;
		          text-decoration: none; border-radius: 4px; display: inline-block;">
			Confirm Account
		</a>
	</p>
	<p>Or copy and paste this link into your browser:</p>
	<p style="word-break: break-all; color: #666;">{{.ConfirmURL}}</p>
	<p>This link will expire in 24 hours.</p>
	<hr>
	<p style="color: #999; font-size: 12px;">
		If you didn't create an account, please ignore this email.
	</p>
</body>
</html>
`))

func renderConfirmation(username, confirmURL string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Username   string
		ConfirmURL string
	}{Username: username, ConfirmURL: confirmURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LogMailer logs the confirmation URL instead of delivering mail. Useful in
// development and tests where no SMTP server is available.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendConfirmation(ctx context.Context, to, username, confirmURL string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "smtp not configured, skipping email",
		slog.String("to", to),
		slog.String("subject", confirmationSubject),
		slog.String("confirm_url", confirmURL),
	)
	return nil
}

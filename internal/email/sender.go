package email

import (
	"context"
	"fmt"

	"github.com/sitebrief/auth-service/internal/model"
	gomail "gopkg.in/gomail.v2"
)

type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(host string, port int, username, password, from string) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *Sender) SendPasswordResetEmail(_ context.Context, emailType model.EmailType, email string, link string) error {
	subject := "Reset your password"
	if emailType == model.AccountLockEmailType {
		subject = "Your account has been locked"
	}

	body := fmt.Sprintf(`<p>Hello,</p>
<p>A password reset was requested for your daily briefing account. Click the link below to choose a new password. The link expires in 1 hour.</p>
<p><a href="%s">Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>`, link)

	return s.send(email, subject, body)
}

func (s *Sender) SendAccountLockEmail(_ context.Context, email string, attempt *model.LoginAttempt) error {
	body := fmt.Sprintf(`<p>Hello,</p>
<p>Your daily briefing account was temporarily locked after repeated failed sign-in attempts.</p>
<p>Last attempt: %s<br>Device: %s<br>IP address: %s</p>
<p>You can sign in again once the lockout window has passed, or reset your password if this was not you.</p>`,
		attempt.CreatedAt.Format("January 2, 2006 at 3:04 PM"), attempt.Device, attempt.IPAddress)

	return s.send(email, "Your account has been locked", body)
}

func (s *Sender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

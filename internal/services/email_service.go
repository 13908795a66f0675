package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"gradevision/internal/models"
)

// EmailService delivers one-time codes out of band. Failure must be
// reported distinctly so callers can surface a delivery error without
// leaking the code.
type EmailService interface {
	SendOtpEmail(email, code, purpose string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (s *emailService) SendOtpEmail(email, code, purpose string) error {
	subject := "Grade Vision: Verify your email"
	title := "Verify Your Email"
	message := "Use the verification code below to complete your sign-up on Grade Vision."
	if purpose == models.PurposeForgotPassword {
		subject = "Grade Vision: Password reset code"
		title = "Reset Your Password"
		message = "Use the code below to reset your Grade Vision account password."
	}

	body := fmt.Sprintf(`
		<h2>%s</h2>
		<p>%s</p>
		<p style="font-size:28px;font-weight:700;letter-spacing:6px;">%s</p>
		<p>This code expires in <strong>5 minutes</strong>.</p>
		<p>If you didn't request this, you can safely ignore this email.</p>
	`, title, message, code)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"clubsphere-backend/internal/config"
	"clubsphere-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// NewEmailService builds the provider the config selects. An empty provider
// yields a no-op sender so decisions never depend on outbound email being
// configured.
func NewEmailService(cfg config.EmailConfig) EmailService {
	switch cfg.Provider {
	case "smtp":
		return &smtpEmailService{cfg: cfg}
	case "sendgrid":
		return &sendGridEmailService{cfg: cfg}
	default:
		return &noopEmailService{}
	}
}

func clubDecisionBody(name, clubName string, approved bool) (subject, body string) {
	if approved {
		return fmt.Sprintf("Your club %s has been approved", clubName),
			fmt.Sprintf("Hello %s,\n\nGood news: your club %q has been approved and is now publicly listed.\n\nThe ClubSphere Team", name, clubName)
	}
	return fmt.Sprintf("Your club %s was not approved", clubName),
		fmt.Sprintf("Hello %s,\n\nUnfortunately your club %q was not approved.\n\nThe ClubSphere Team", name, clubName)
}

func membershipDecisionBody(name, clubName string, approved bool, reason string) (subject, body string) {
	if approved {
		return fmt.Sprintf("Welcome to %s", clubName),
			fmt.Sprintf("Hello %s,\n\nYour request to join %q has been approved. Welcome aboard!\n\nThe ClubSphere Team", name, clubName)
	}
	body = fmt.Sprintf("Hello %s,\n\nYour request to join %q was declined.", name, clubName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nThe ClubSphere Team"
	return fmt.Sprintf("Your request to join %s was declined", clubName), body
}

func pendingReminderBody(name string, pendingClubs, pendingRequests int) (subject, body string) {
	return "ClubSphere: items awaiting your review",
		fmt.Sprintf("Hello %s,\n\nThere are %d club(s) and %d membership request(s) waiting for a decision.\n\nThe ClubSphere Team",
			name, pendingClubs, pendingRequests)
}

// smtpEmailService sends through a plain SMTP relay.
type smtpEmailService struct {
	cfg config.EmailConfig
}

func (s *smtpEmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendClubDecision(ctx context.Context, email, name, clubName string, approved bool) error {
	subject, body := clubDecisionBody(name, clubName, approved)
	return s.send(email, subject, body)
}

func (s *smtpEmailService) SendMembershipDecision(ctx context.Context, email, name, clubName string, approved bool, reason string) error {
	subject, body := membershipDecisionBody(name, clubName, approved, reason)
	return s.send(email, subject, body)
}

func (s *smtpEmailService) SendPendingReminder(ctx context.Context, email, name string, pendingClubs, pendingRequests int) error {
	subject, body := pendingReminderBody(name, pendingClubs, pendingRequests)
	return s.send(email, subject, body)
}

// sendGridEmailService sends through the SendGrid API.
type sendGridEmailService struct {
	cfg config.EmailConfig
}

func (s *sendGridEmailService) send(to, toName, subject, body string) error {
	from := sgmail.NewEmail(s.cfg.FromName, s.cfg.From)
	recipient := sgmail.NewEmail(toName, to)
	message := sgmail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendClubDecision(ctx context.Context, email, name, clubName string, approved bool) error {
	subject, body := clubDecisionBody(name, clubName, approved)
	return s.send(email, name, subject, body)
}

func (s *sendGridEmailService) SendMembershipDecision(ctx context.Context, email, name, clubName string, approved bool, reason string) error {
	subject, body := membershipDecisionBody(name, clubName, approved, reason)
	return s.send(email, name, subject, body)
}

func (s *sendGridEmailService) SendPendingReminder(ctx context.Context, email, name string, pendingClubs, pendingRequests int) error {
	subject, body := pendingReminderBody(name, pendingClubs, pendingRequests)
	return s.send(email, name, subject, body)
}

type noopEmailService struct{}

func (noopEmailService) SendClubDecision(ctx context.Context, email, name, clubName string, approved bool) error {
	logger.Debug("email disabled, skipping club decision notice", "to", email)
	return nil
}

func (noopEmailService) SendMembershipDecision(ctx context.Context, email, name, clubName string, approved bool, reason string) error {
	logger.Debug("email disabled, skipping membership decision notice", "to", email)
	return nil
}

func (noopEmailService) SendPendingReminder(ctx context.Context, email, name string, pendingClubs, pendingRequests int) error {
	logger.Debug("email disabled, skipping pending reminder", "to", email)
	return nil
}

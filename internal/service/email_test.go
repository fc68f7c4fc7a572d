package service

import (
	"context"
	"testing"

	"clubsphere-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	assert.IsType(t, &smtpEmailService{}, NewEmailService(config.EmailConfig{Provider: "smtp"}))
	assert.IsType(t, &sendGridEmailService{}, NewEmailService(config.EmailConfig{Provider: "sendgrid"}))
	assert.IsType(t, &noopEmailService{}, NewEmailService(config.EmailConfig{}))
}

func TestNoopEmailService(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{})
	require.NoError(t, svc.SendClubDecision(context.Background(), "a@b.c", "Pat", "Chess Club", true))
	require.NoError(t, svc.SendMembershipDecision(context.Background(), "a@b.c", "Pat", "Chess Club", false, ""))
	require.NoError(t, svc.SendPendingReminder(context.Background(), "a@b.c", "Pat", 1, 2))
}

func TestDecisionBodies(t *testing.T) {
	t.Run("club approval", func(t *testing.T) {
		subject, body := clubDecisionBody("Pat", "Chess Club", true)
		assert.Contains(t, subject, "approved")
		assert.Contains(t, body, "Chess Club")
		assert.Contains(t, body, "publicly listed")
	})

	t.Run("club rejection", func(t *testing.T) {
		subject, body := clubDecisionBody("Pat", "Chess Club", false)
		assert.Contains(t, subject, "not approved")
		assert.Contains(t, body, "was not approved")
	})

	t.Run("membership rejection includes the reason when given", func(t *testing.T) {
		_, body := membershipDecisionBody("Pat", "Chess Club", false, "roster is full")
		assert.Contains(t, body, "Reason: roster is full")

		_, body = membershipDecisionBody("Pat", "Chess Club", false, "")
		assert.NotContains(t, body, "Reason:")
	})

	t.Run("pending reminder carries both queue sizes", func(t *testing.T) {
		_, body := pendingReminderBody("Admin", 3, 5)
		assert.Contains(t, body, "3 club(s)")
		assert.Contains(t, body, "5 membership request(s)")
	})
}

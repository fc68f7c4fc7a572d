package jobs

import (
	"context"
	"time"

	"clubsphere-backend/internal/cache"
	"clubsphere-backend/internal/config"
	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/logger"
	"clubsphere-backend/internal/repository"
	"clubsphere-backend/internal/service"
)

const jobTimeout = 30 * time.Second

// JobRunner holds the dependencies the scheduled jobs need.
type JobRunner struct {
	cfg      *config.Config
	mirror   *cache.Mirror
	clubRepo repository.ClubRepository
	reqRepo  repository.MembershipRequestRepository
	userRepo repository.UserRepository
	emailSvc service.EmailService
}

func NewJobRunner(
	cfg *config.Config,
	mirror *cache.Mirror,
	clubRepo repository.ClubRepository,
	reqRepo repository.MembershipRequestRepository,
	userRepo repository.UserRepository,
	emailSvc service.EmailService,
) *JobRunner {
	return &JobRunner{
		cfg:      cfg,
		mirror:   mirror,
		clubRepo: clubRepo,
		reqRepo:  reqRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

func (j *JobRunner) Config() *config.Config {
	return j.cfg
}

// RefreshProjections reconciles the client mirror with the authoritative
// store. It is the safety net for any drift the per-decision reconciliation
// missed.
func (j *JobRunner) RefreshProjections() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := j.mirror.Refresh(ctx, "scheduled"); err != nil {
		logger.Error("scheduled projection refresh failed", "error", err)
		return
	}
	logger.Debug("projection mirror refreshed")
}

// SendPendingReminder emails every admin when entities have been sitting in
// the approval queues longer than the configured age.
func (j *JobRunner) SendPendingReminder() {
	ageHours := j.cfg.Workflow.PendingReminderAgeHours
	if ageHours <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := time.Now().UTC().Add(-time.Duration(ageHours) * time.Hour)

	pendingClubs, err := j.clubRepo.ListByStatus(ctx, domain.ClubStatusPending)
	if err != nil {
		logger.Error("pending reminder: failed to list pending clubs", "error", err)
		return
	}
	staleClubs := 0
	for _, c := range pendingClubs {
		if createdBefore(c.CreatedOn, cutoff) {
			staleClubs++
		}
	}

	pendingReqs, err := j.reqRepo.ListPending(ctx)
	if err != nil {
		logger.Error("pending reminder: failed to list pending requests", "error", err)
		return
	}
	staleReqs := 0
	for _, r := range pendingReqs {
		if createdBefore(r.CreatedOn, cutoff) {
			staleReqs++
		}
	}

	if staleClubs == 0 && staleReqs == 0 {
		return
	}

	admins, err := j.userRepo.ListByRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		logger.Error("pending reminder: failed to list admins", "error", err)
		return
	}
	for _, admin := range admins {
		if err := j.emailSvc.SendPendingReminder(ctx, admin.Email, admin.Name, staleClubs, staleReqs); err != nil {
			logger.Warn("pending reminder email failed", "admin_id", admin.ID, "error", err)
		}
	}
	logger.Info("pending reminder sent", "stale_clubs", staleClubs, "stale_requests", staleReqs, "admins", len(admins))
}

func createdBefore(createdOn string, cutoff time.Time) bool {
	t, err := time.Parse(domain.TimeFormat, createdOn)
	if err != nil {
		return false
	}
	return t.Before(cutoff)
}

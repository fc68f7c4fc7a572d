package service

import (
	"context"
	"errors"
	"fmt"

	"clubsphere-backend/internal/config"
	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/logger"
	"clubsphere-backend/internal/repository"
	"clubsphere-backend/internal/telemetry"
)

// ErrEmptyDraft rejects a club submission without a name.
var ErrEmptyDraft = errors.New("club name is required")

// requireRole is the single authorization gate for workflow operations.
// A missing identity is Unauthorized; a real identity without the needed
// role is Forbidden.
func requireRole(sess *domain.Session, required domain.UserRole) error {
	if !sess.Valid() {
		return domain.ErrUnauthorized
	}
	if required == domain.UserRoleAdmin && !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

type workflowService struct {
	clubRepo repository.ClubRepository
	reqRepo  repository.MembershipRequestRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	cfg      config.WorkflowConfig
}

func NewWorkflowService(
	clubRepo repository.ClubRepository,
	reqRepo repository.MembershipRequestRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	cfg config.WorkflowConfig,
) WorkflowService {
	return &workflowService{
		clubRepo: clubRepo,
		reqRepo:  reqRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		cfg:      cfg,
	}
}

func (s *workflowService) SubmitClub(ctx context.Context, sess *domain.Session, draft domain.ClubDraft) (*domain.Club, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if draft.Name == "" {
		return nil, ErrEmptyDraft
	}

	club := &domain.Club{
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Location:    draft.Location,
		CreatedBy:   sess.UserID,
		Status:      domain.ClubStatusPending,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	telemetry.ClubSubmissionsTotal.Inc()
	logger.Info("club submitted", "club_id", club.ID, "name", club.Name, "created_by", sess.UserID)
	return club, nil
}

func (s *workflowService) DecideClub(ctx context.Context, sess *domain.Session, clubID int32, decision Decision) (*domain.Club, error) {
	if err := requireRole(sess, domain.UserRoleAdmin); err != nil {
		return nil, err
	}
	status, err := clubStatusFor(decision)
	if err != nil {
		return nil, err
	}

	club, err := s.clubRepo.Decide(ctx, clubID, status, sess.UserID, s.cfg.CreatorAutoJoin)
	if err != nil {
		telemetry.WorkflowDecisionsTotal.WithLabelValues("club", string(decision), "error").Inc()
		return nil, err
	}

	telemetry.WorkflowDecisionsTotal.WithLabelValues("club", string(decision), "ok").Inc()
	logger.Info("club decided", "club_id", club.ID, "decision", decision, "decided_by", sess.UserID)

	s.notifyClubDecision(ctx, club, decision)
	return club, nil
}

func (s *workflowService) SubmitMembershipRequest(ctx context.Context, sess *domain.Session, clubID int32, message string) (*domain.MembershipRequest, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}

	// Joinable means approved. A pending or rejected club is invisible to
	// the requester, so both report NotFound.
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.Status != domain.ClubStatusApproved {
		return nil, domain.ErrNotFound
	}

	active, err := s.reqRepo.CountActive(ctx, sess.UserID, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if active > 0 {
		return nil, fmt.Errorf("%w: a pending or approved request already exists for this club", domain.ErrConflict)
	}

	req := &domain.MembershipRequest{
		ClubID:      clubID,
		RequesterID: sess.UserID,
		Message:     message,
		Status:      domain.MembershipRequestStatusPending,
	}
	// The partial unique index backs the check above, so a racing duplicate
	// still surfaces as Conflict here.
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	telemetry.MembershipRequestsTotal.Inc()
	logger.Info("membership requested", "request_id", req.ID, "club_id", clubID, "requester", sess.UserID)
	return req, nil
}

func (s *workflowService) DecideMembershipRequest(ctx context.Context, sess *domain.Session, requestID int32, decision Decision, reason string) (*domain.MembershipRequest, error) {
	if err := requireRole(sess, domain.UserRoleAdmin); err != nil {
		return nil, err
	}

	var req *domain.MembershipRequest
	var err error
	switch decision {
	case DecisionApprove:
		req, err = s.reqRepo.Approve(ctx, requestID, sess.UserID)
	case DecisionReject:
		req, err = s.reqRepo.Reject(ctx, requestID, sess.UserID, reason)
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrInvalidTransition, decision)
	}
	if err != nil {
		telemetry.WorkflowDecisionsTotal.WithLabelValues("membership_request", string(decision), "error").Inc()
		return nil, err
	}

	telemetry.WorkflowDecisionsTotal.WithLabelValues("membership_request", string(decision), "ok").Inc()
	logger.Info("membership request decided", "request_id", req.ID, "decision", decision, "decided_by", sess.UserID)

	s.notifyMembershipDecision(ctx, req, decision)
	return req, nil
}

func clubStatusFor(decision Decision) (domain.ClubStatus, error) {
	switch decision {
	case DecisionApprove:
		return domain.ClubStatusApproved, nil
	case DecisionReject:
		return domain.ClubStatusRejected, nil
	default:
		return "", fmt.Errorf("%w: unknown decision %q", domain.ErrInvalidTransition, decision)
	}
}

// Decision side channels are best effort: a lost email or notification row
// never undoes a committed transition.

func (s *workflowService) notifyClubDecision(ctx context.Context, club *domain.Club, decision Decision) {
	approved := decision == DecisionApprove
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}

	note := &domain.Notification{
		UserID:  club.CreatedBy,
		Type:    "club_decision",
		Message: fmt.Sprintf("Your club %q has been %s.", club.Name, verdict),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to record club decision notification", "club_id", club.ID, "error", err)
	}

	creator, err := s.userRepo.GetByID(ctx, club.CreatedBy)
	if err != nil {
		logger.Warn("failed to load club creator for email", "club_id", club.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendClubDecision(ctx, creator.Email, creator.Name, club.Name, approved); err != nil {
		logger.Warn("failed to send club decision email", "club_id", club.ID, "error", err)
	}
}

func (s *workflowService) notifyMembershipDecision(ctx context.Context, req *domain.MembershipRequest, decision Decision) {
	approved := decision == DecisionApprove

	club, err := s.clubRepo.GetByID(ctx, req.ClubID)
	if err != nil {
		logger.Warn("failed to load club for decision notification", "request_id", req.ID, "error", err)
		return
	}

	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	note := &domain.Notification{
		UserID:  req.RequesterID,
		Type:    "membership_decision",
		Message: fmt.Sprintf("Your request to join %q has been %s.", club.Name, verdict),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to record membership decision notification", "request_id", req.ID, "error", err)
	}

	requester, err := s.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		logger.Warn("failed to load requester for email", "request_id", req.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendMembershipDecision(ctx, requester.Email, requester.Name, club.Name, approved, req.RejectionReason); err != nil {
		logger.Warn("failed to send membership decision email", "request_id", req.ID, "error", err)
	}
}

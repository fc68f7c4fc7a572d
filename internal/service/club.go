package service

import (
	"context"
	"fmt"

	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/repository"
)

type clubService struct {
	clubRepo repository.ClubRepository
	reqRepo  repository.MembershipRequestRepository
}

func NewClubService(clubRepo repository.ClubRepository, reqRepo repository.MembershipRequestRepository) ClubService {
	return &clubService{
		clubRepo: clubRepo,
		reqRepo:  reqRepo,
	}
}

func (s *clubService) ListApprovedClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return s.clubRepo.ListByStatus(ctx, domain.ClubStatusApproved)
}

func (s *clubService) GetClub(ctx context.Context, sess *domain.Session, clubID int32) (*domain.Club, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	// Non-admins only see the public registry; pending and rejected clubs
	// stay hidden.
	if club.Status != domain.ClubStatusApproved && !sess.IsAdmin() && club.CreatedBy != sess.UserID {
		return nil, domain.ErrNotFound
	}
	members, err := s.clubRepo.ListMemberIDs(ctx, club.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member set: %w", err)
	}
	club.MemberIDs = members
	return club, nil
}

func (s *clubService) ListMyClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return s.clubRepo.ListByMember(ctx, sess.UserID)
}

func (s *clubService) ListMyMembershipRequests(ctx context.Context, sess *domain.Session) ([]domain.MembershipRequest, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return s.reqRepo.ListByRequester(ctx, sess.UserID)
}

func (s *clubService) ListPendingClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error) {
	if err := requireRole(sess, domain.UserRoleAdmin); err != nil {
		return nil, err
	}
	return s.clubRepo.ListByStatus(ctx, domain.ClubStatusPending)
}

func (s *clubService) ListPendingMembershipRequests(ctx context.Context, sess *domain.Session) ([]domain.MembershipRequest, error) {
	if err := requireRole(sess, domain.UserRoleAdmin); err != nil {
		return nil, err
	}
	return s.reqRepo.ListPending(ctx)
}

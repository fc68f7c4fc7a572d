// Package cache holds the client-facing mirror of the server-authoritative
// projections: the approved club list and the two admin pending queues.
//
// The mirror never mutates ahead of the store. A decided entity is removed
// from the local pending lists only after the authoritative call has
// succeeded, and a decision that fails with a conflict triggers a full
// re-fetch instead of trusting the local copy.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/logger"
	"clubsphere-backend/internal/repository"
	"clubsphere-backend/internal/telemetry"
)

type Mirror struct {
	clubRepo repository.ClubRepository
	reqRepo  repository.MembershipRequestRepository
	maxAge   time.Duration

	mu              sync.RWMutex
	approvedClubs   []domain.Club
	pendingClubs    []domain.Club
	pendingRequests []domain.MembershipRequest
	lastRefresh     time.Time
}

func NewMirror(clubRepo repository.ClubRepository, reqRepo repository.MembershipRequestRepository, maxAge time.Duration) *Mirror {
	if maxAge <= 0 {
		maxAge = time.Minute
	}
	return &Mirror{
		clubRepo: clubRepo,
		reqRepo:  reqRepo,
		maxAge:   maxAge,
	}
}

// Refresh replaces every projection with the store's current view. The
// trigger label ("scheduled", "conflict", "manual") feeds the refresh
// counter.
func (m *Mirror) Refresh(ctx context.Context, trigger string) error {
	approved, err := m.clubRepo.ListByStatus(ctx, domain.ClubStatusApproved)
	if err != nil {
		return fmt.Errorf("failed to refresh approved clubs: %w", err)
	}
	pending, err := m.clubRepo.ListByStatus(ctx, domain.ClubStatusPending)
	if err != nil {
		return fmt.Errorf("failed to refresh pending clubs: %w", err)
	}
	requests, err := m.reqRepo.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh pending requests: %w", err)
	}

	m.mu.Lock()
	m.approvedClubs = approved
	m.pendingClubs = pending
	m.pendingRequests = requests
	m.lastRefresh = time.Now()
	m.mu.Unlock()

	telemetry.CacheRefreshesTotal.WithLabelValues(trigger).Inc()
	return nil
}

// ApprovedClubs returns the mirrored public club list, refreshing first if
// the copy is older than the configured max age.
func (m *Mirror) ApprovedClubs(ctx context.Context) ([]domain.Club, error) {
	m.mu.RLock()
	stale := time.Since(m.lastRefresh) > m.maxAge
	m.mu.RUnlock()

	if stale {
		if err := m.Refresh(ctx, "manual"); err != nil {
			return nil, err
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyClubs(m.approvedClubs), nil
}

func (m *Mirror) PendingClubs() []domain.Club {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyClubs(m.pendingClubs)
}

func (m *Mirror) PendingRequests() []domain.MembershipRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.MembershipRequest, len(m.pendingRequests))
	copy(out, m.pendingRequests)
	return out
}

func (m *Mirror) LastRefresh() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRefresh
}

// CommitClubDecision reconciles the mirror after the store confirmed a club
// decision. The club leaves the pending list; an approval also joins the
// public list.
func (m *Mirror) CommitClubDecision(club *domain.Club) {
	if club == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pendingClubs = removeClub(m.pendingClubs, club.ID)
	if club.Status == domain.ClubStatusApproved {
		m.approvedClubs = append(removeClub(m.approvedClubs, club.ID), *club)
	}
}

// CommitRequestDecision reconciles the mirror after the store confirmed a
// membership request decision.
func (m *Mirror) CommitRequestDecision(req *domain.MembershipRequest) {
	if req == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	filtered := m.pendingRequests[:0]
	for _, r := range m.pendingRequests {
		if r.ID != req.ID {
			filtered = append(filtered, r)
		}
	}
	m.pendingRequests = filtered
}

// OnDecisionError re-fetches every projection when a decision was refused
// because someone else got there first. The local pending lists are stale in
// exactly that case.
func (m *Mirror) OnDecisionError(ctx context.Context, err error) {
	if !errors.Is(err, domain.ErrInvalidTransition) && !errors.Is(err, domain.ErrConflict) {
		return
	}
	if refreshErr := m.Refresh(ctx, "conflict"); refreshErr != nil {
		logger.Warn("failed to refresh mirror after decision conflict", "error", refreshErr)
	}
}

func copyClubs(src []domain.Club) []domain.Club {
	out := make([]domain.Club, len(src))
	copy(out, src)
	return out
}

func removeClub(clubs []domain.Club, id int32) []domain.Club {
	filtered := clubs[:0]
	for _, c := range clubs {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

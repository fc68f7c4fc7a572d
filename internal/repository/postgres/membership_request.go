package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/repository"

	"github.com/lib/pq"
)

type membershipRequestRepository struct {
	db *sql.DB
}

func NewMembershipRequestRepository(db *sql.DB) repository.MembershipRequestRepository {
	return &membershipRequestRepository{db: db}
}

const requestColumns = `id, club_id, requester_id, message, status, rejection_reason, created_on, decided_on, decided_by`

func (r *membershipRequestRepository) Create(ctx context.Context, req *domain.MembershipRequest) error {
	query := `INSERT INTO membership_requests (club_id, requester_id, message, status, created_on)
	          VALUES ($1, $2, $3, $4, now()) RETURNING id, created_on`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, req.ClubID, req.RequesterID, req.Message, req.Status).Scan(&req.ID, &createdOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	req.CreatedOn = formatTime(createdOn)
	return nil
}

func (r *membershipRequestRepository) GetByID(ctx context.Context, id int32) (*domain.MembershipRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM membership_requests WHERE id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *membershipRequestRepository) ListPending(ctx context.Context) ([]domain.MembershipRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM membership_requests WHERE status = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, domain.MembershipRequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *membershipRequestRepository) ListByRequester(ctx context.Context, userID int32) ([]domain.MembershipRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM membership_requests WHERE requester_id = $1 ORDER BY created_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *membershipRequestRepository) CountActive(ctx context.Context, userID, clubID int32) (int32, error) {
	query := `SELECT COUNT(*) FROM membership_requests
	          WHERE requester_id = $1 AND club_id = $2 AND status IN ($3, $4)`
	var count int32
	err := r.db.QueryRowContext(ctx, query, userID, clubID,
		domain.MembershipRequestStatusPending, domain.MembershipRequestStatusApproved).Scan(&count)
	return count, err
}

func (r *membershipRequestRepository) Approve(ctx context.Context, id, decidedBy int32) (*domain.MembershipRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE membership_requests SET status = $1, decided_on = now(), decided_by = $2
	          WHERE id = $3 AND status = $4
	          RETURNING ` + requestColumns
	req, err := scanRequest(tx.QueryRowContext(ctx, query,
		domain.MembershipRequestStatusApproved, decidedBy, id, domain.MembershipRequestStatusPending))
	if err != nil {
		return nil, r.classifyDecideError(ctx, tx, id, err)
	}

	// Membership is one relation, so the request flip and the member-set
	// insert commit or roll back together. No reader observes one without
	// the other.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO club_members (club_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		req.ClubID, req.RequesterID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *membershipRequestRepository) Reject(ctx context.Context, id, decidedBy int32, reason string) (*domain.MembershipRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE membership_requests SET status = $1, rejection_reason = $2, decided_on = now(), decided_by = $3
	          WHERE id = $4 AND status = $5
	          RETURNING ` + requestColumns
	req, err := scanRequest(tx.QueryRowContext(ctx, query,
		domain.MembershipRequestStatusRejected, reason, decidedBy, id, domain.MembershipRequestStatusPending))
	if err != nil {
		return nil, r.classifyDecideError(ctx, tx, id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return req, nil
}

// classifyDecideError distinguishes a missing request from one already
// decided when the conditional update matched no rows.
func (r *membershipRequestRepository) classifyDecideError(ctx context.Context, tx *sql.Tx, id int32, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	var exists bool
	if qErr := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM membership_requests WHERE id = $1)`, id).Scan(&exists); qErr != nil {
		return qErr
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidTransition
}

func scanRequest(row rowScanner) (*domain.MembershipRequest, error) {
	req := &domain.MembershipRequest{}
	var createdOn time.Time
	var decidedOn sql.NullTime
	var decidedBy sql.NullInt32
	err := row.Scan(&req.ID, &req.ClubID, &req.RequesterID, &req.Message, &req.Status, &req.RejectionReason, &createdOn, &decidedOn, &decidedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	req.CreatedOn = formatTime(createdOn)
	req.DecidedOn = formatNullTime(decidedOn)
	if decidedBy.Valid {
		req.DecidedBy = &decidedBy.Int32
	}
	return req, nil
}

func collectRequests(rows *sql.Rows) ([]domain.MembershipRequest, error) {
	var reqs []domain.MembershipRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/repository"
)

type clubRepository struct {
	db *sql.DB
}

func NewClubRepository(db *sql.DB) repository.ClubRepository {
	return &clubRepository{db: db}
}

const clubColumns = `id, name, description, category, location, created_by, status, created_on, decided_on, decided_by`

func (r *clubRepository) Create(ctx context.Context, c *domain.Club) error {
	query := `INSERT INTO clubs (name, description, category, location, created_by, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING id, created_on`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Description, c.Category, c.Location, c.CreatedBy, c.Status).Scan(&c.ID, &createdOn)
	if err != nil {
		return err
	}
	c.CreatedOn = formatTime(createdOn)
	return nil
}

func (r *clubRepository) GetByID(ctx context.Context, id int32) (*domain.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`
	c, err := scanClub(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clubRepository) ListByStatus(ctx context.Context, status domain.ClubStatus) ([]domain.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE status = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClubs(rows)
}

func (r *clubRepository) ListByMember(ctx context.Context, userID int32) ([]domain.Club, error) {
	query := `SELECT c.id, c.name, c.description, c.category, c.location, c.created_by, c.status, c.created_on, c.decided_on, c.decided_by
	          FROM clubs c
	          JOIN club_members m ON m.club_id = c.id
	          WHERE m.user_id = $1
	          ORDER BY m.joined_on`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClubs(rows)
}

func (r *clubRepository) ListMemberIDs(ctx context.Context, clubID int32) ([]int32, error) {
	query := `SELECT user_id FROM club_members WHERE club_id = $1 ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *clubRepository) Decide(ctx context.Context, clubID int32, status domain.ClubStatus, decidedBy int32, addCreator bool) (*domain.Club, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The status guard and the flip are a single conditional update, so two
	// concurrent decides on the same club serialize on the row lock and the
	// loser matches zero rows.
	query := `UPDATE clubs SET status = $1, decided_on = now(), decided_by = $2
	          WHERE id = $3 AND status = $4
	          RETURNING ` + clubColumns
	c, err := scanClub(tx.QueryRowContext(ctx, query, status, decidedBy, clubID, domain.ClubStatusPending))
	if errors.Is(err, domain.ErrNotFound) {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM clubs WHERE id = $1)`, clubID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}

	if addCreator && status == domain.ClubStatusApproved {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO club_members (club_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			c.ID, c.CreatedBy)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClub(row rowScanner) (*domain.Club, error) {
	c := &domain.Club{}
	var createdOn time.Time
	var decidedOn sql.NullTime
	var decidedBy sql.NullInt32
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.Location, &c.CreatedBy, &c.Status, &createdOn, &decidedOn, &decidedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.CreatedOn = formatTime(createdOn)
	c.DecidedOn = formatNullTime(decidedOn)
	if decidedBy.Valid {
		c.DecidedBy = &decidedBy.Int32
	}
	return c, nil
}

func collectClubs(rows *sql.Rows) ([]domain.Club, error) {
	var clubs []domain.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, *c)
	}
	return clubs, rows.Err()
}

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

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, college, password_hash, role, created_on)
	          VALUES ($1, $2, $3, $4, $5, now()) RETURNING id, created_on`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.College, u.PasswordHash, u.Role).Scan(&u.ID, &createdOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	u.CreatedOn = formatTime(createdOn)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, name, email, college, password_hash, role, created_on FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, college, password_hash, role, created_on FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var createdOn time.Time
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.College, &u.PasswordHash, &u.Role, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = formatTime(createdOn)
	return u, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	query := `SELECT id, name, email, college, password_hash, role, created_on FROM users WHERE role = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u := domain.User{}
		var createdOn time.Time
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.College, &u.PasswordHash, &u.Role, &createdOn); err != nil {
			return nil, err
		}
		u.CreatedOn = formatTime(createdOn)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListClubIDs(ctx context.Context, userID int32) ([]int32, error) {
	query := `SELECT club_id FROM club_members WHERE user_id = $1 ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, userID)
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

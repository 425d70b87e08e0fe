package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codevaulthq/codevault/internal/domain/user"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.PasswordHash, &u.GoogleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperror.NewInternal("failed to scan user row", err)
	}
	return u, nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, name, photo_url, password_hash, google_id
		FROM users
		WHERE email = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, email, name, photo_url, password_hash, google_id
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *postgresUserRepo) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, name, photo_url, password_hash, google_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, u.ID, u.Email, u.Name, u.PhotoURL, u.PasswordHash, u.GoogleID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewConflict("user", "email", u.Email)
		}
		return apperror.NewInternal("failed to save user", err)
	}
	return nil
}

func (r *postgresUserRepo) UpsertGoogle(ctx context.Context, u *user.User) (*user.User, error) {
	query := `
		INSERT INTO users (id, email, name, photo_url, password_hash, google_id)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			photo_url = EXCLUDED.photo_url,
			google_id = EXCLUDED.google_id
		RETURNING id, email, name, photo_url, password_hash, google_id
	`
	return scanUser(r.db.QueryRow(ctx, query, uuid.New(), u.Email, u.Name, u.PhotoURL, u.GoogleID))
}

func (r *postgresUserRepo) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET photo_url = $2 WHERE id = $1`, id, photoURL)
	if err != nil {
		return apperror.NewInternal("failed to update photo url", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", id.String())
	}
	return nil
}

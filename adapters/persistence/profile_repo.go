package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codevaulthq/codevault/internal/domain/profile"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type postgresProfileRepo struct {
	db *pgxpool.Pool
}

func NewPostgresProfileRepo(db *pgxpool.Pool) profile.Repository {
	return &postgresProfileRepo{db: db}
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT user_id, name, domain, batch_year, about, reputation,
		       linkedin_url, github_url, website_url, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &profile.Profile{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Name,
		&p.Domain,
		&p.BatchYear,
		&p.About,
		&p.Reputation,
		&p.LinkedinURL,
		&p.GithubURL,
		&p.WebsiteURL,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", userID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

// Upsert writes every owner-editable field. Reputation is deliberately
// absent from the update list so it survives profile edits.
func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, domain, batch_year, about, reputation,
		                      linkedin_url, github_url, website_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			domain = EXCLUDED.domain,
			batch_year = EXCLUDED.batch_year,
			about = EXCLUDED.about,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			website_url = EXCLUDED.website_url,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		p.UserID, p.Name, p.Domain, p.BatchYear, p.About,
		p.LinkedinURL, p.GithubURL, p.WebsiteURL, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error {
	if delta < 0 {
		return apperror.NewInvalidInput("reputation can only increase", nil)
	}
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET reputation = reputation + $2 WHERE user_id = $1`,
		userID, delta,
	)
	if err != nil {
		return apperror.NewInternal("failed to increment reputation", err)
	}
	return nil
}

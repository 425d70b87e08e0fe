package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

var psqlProject = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const projectColumns = `id, title, description, tech_stack, domain, batch_year,
	github_link, demo_link, summary, author_id, author_name, author_photo_url,
	reputation, upvoter_ids, created_at`

func scanProjectRow(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.TechStack,
		&p.Domain,
		&p.BatchYear,
		&p.GithubLink,
		&p.DemoLink,
		&p.Summary,
		&p.AuthorID,
		&p.AuthorName,
		&p.AuthorPhotoURL,
		&p.Reputation,
		&p.UpvoterIDs,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("project", "")
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}
	if p.UpvoterIDs == nil {
		p.UpvoterIDs = []uuid.UUID{}
	}
	return p, nil
}

func scanProjectRows(rows pgx.Rows) ([]*project.Project, error) {
	defer rows.Close()
	projects := make([]*project.Project, 0)

	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) Save(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (id, title, description, tech_stack, domain, batch_year,
			github_link, demo_link, summary, author_id, author_name, author_photo_url,
			reputation, upvoter_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.TechStack, p.Domain, p.BatchYear,
		p.GithubLink, p.DemoLink, p.Summary, p.AuthorID, p.AuthorName, p.AuthorPhotoURL,
		p.Reputation, p.UpvoterIDs, p.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects SET
			title = $2, description = $3, tech_stack = $4, domain = $5,
			batch_year = $6, github_link = $7, demo_link = $8
		WHERE id = $1 AND author_id = $9
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.TechStack, p.Domain,
		p.BatchYear, p.GithubLink, p.DemoLink, p.AuthorID,
	)
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", p.ID.String())
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProjectRow(r.db.QueryRow(ctx, query, id))
}

func (r *postgresProjectRepo) ListAll(ctx context.Context) ([]*project.Project, error) {
	builder := psqlProject.Select(projectColumns).
		From("projects").
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	return scanProjectRows(rows)
}

func (r *postgresProjectRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*project.Project, error) {
	builder := psqlProject.Select(projectColumns).
		From("projects").
		Where(sq.Eq{"author_id": authorID}).
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list by author query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects by author", err)
	}
	return scanProjectRows(rows)
}

// Upvote performs the membership check and the increment in one statement,
// so the database serializes concurrent votes and a voter can never be
// counted twice.
func (r *postgresProjectRepo) Upvote(ctx context.Context, id uuid.UUID, voterID uuid.UUID) (bool, error) {
	query := `
		UPDATE projects SET
			reputation = reputation + 1,
			upvoter_ids = array_append(upvoter_ids, $2)
		WHERE id = $1 AND NOT ($2 = ANY(upvoter_ids))
	`
	cmdTag, err := r.db.Exec(ctx, query, id, voterID)
	if err != nil {
		return false, apperror.NewInternal("failed to upvote project", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return true, nil
	}

	// no row touched: either a duplicate vote or a missing project
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, apperror.NewInternal("failed to check project existence", err)
	}
	if !exists {
		return false, apperror.NewNotFound("project", id.String())
	}
	return false, nil
}

package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codevaulthq/codevault/internal/domain/comment"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type postgresCommentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCommentRepo(db *pgxpool.Pool) comment.Repository {
	return &postgresCommentRepo{db: db}
}

func (r *postgresCommentRepo) Save(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comments (id, project_id, author_id, author_name, author_photo_url, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.ProjectID, c.AuthorID, c.AuthorName, c.AuthorPhotoURL, c.Text, c.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save comment", err)
	}
	return nil
}

func (r *postgresCommentRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*comment.Comment, error) {
	query := `
		SELECT id, project_id, author_id, author_name, author_photo_url, text, created_at
		FROM comments
		WHERE project_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query comments", err)
	}
	defer rows.Close()

	comments := make([]*comment.Comment, 0)
	for rows.Next() {
		c := &comment.Comment{}
		err := rows.Scan(&c.ID, &c.ProjectID, &c.AuthorID, &c.AuthorName, &c.AuthorPhotoURL, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan comment row", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating comment rows", err)
	}
	return comments, nil
}

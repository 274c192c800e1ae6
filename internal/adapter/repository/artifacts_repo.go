package repository

import (
	"context"

	"resume-chatbot/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

// ArtifactsRepo records metadata of generated files. The record itself is
// never stored. A repo without a pool does nothing.
type ArtifactsRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactsRepo(pool *pgxpool.Pool) *ArtifactsRepo {
	return &ArtifactsRepo{pool: pool}
}

func (r *ArtifactsRepo) Save(ctx context.Context, a *domain.Artifact) error {
	if r == nil || r.pool == nil {
		return nil
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO generated_resumes (id, session_id, style, file_name, file_path, file_size, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING`,
		a.ID, a.SessionID, a.Style, a.FileName, a.FilePath, a.Size, a.CreatedAt)
	if err != nil {
		return errors.Wrapf(err, "insert artifact %s", a.FileName)
	}
	return nil
}

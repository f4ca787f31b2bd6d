package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinetrip-backend/internal/domains/movie/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Upsert(ctx context.Context, m *model.Movie) error {
	query := `
		INSERT INTO movies (tmdb_id, title, original_title, poster_path, release_date, country, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title          = EXCLUDED.title,
			original_title = COALESCE(EXCLUDED.original_title, movies.original_title),
			poster_path    = COALESCE(EXCLUDED.poster_path, movies.poster_path),
			release_date   = COALESCE(EXCLUDED.release_date, movies.release_date),
			country        = COALESCE(EXCLUDED.country, movies.country),
			language       = COALESCE(EXCLUDED.language, movies.language),
			updated_at     = NOW()
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		m.TMDBID, m.Title, m.OriginalTitle, m.PosterPath, m.ReleaseDate, m.Country, m.Language,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert movie %d: %w", m.TMDBID, err)
	}
	return nil
}

func (r *postgresRepository) EnsureExists(ctx context.Context, m *model.Movie) error {
	query := `
		INSERT INTO movies (tmdb_id, title, original_title, poster_path, release_date, country, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tmdb_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query,
		m.TMDBID, m.Title, m.OriginalTitle, m.PosterPath, m.ReleaseDate, m.Country, m.Language,
	); err != nil {
		return fmt.Errorf("ensure movie %d: %w", m.TMDBID, err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, tmdbID int) (*model.Movie, error) {
	query := `
		SELECT tmdb_id, title, original_title, poster_path, release_date, country, language, created_at, updated_at
		FROM movies
		WHERE tmdb_id = $1
	`

	m := &model.Movie{}
	err := r.pool.QueryRow(ctx, query, tmdbID).Scan(
		&m.TMDBID, &m.Title, &m.OriginalTitle, &m.PosterPath, &m.ReleaseDate,
		&m.Country, &m.Language, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMovieNotFound
		}
		return nil, fmt.Errorf("get movie %d: %w", tmdbID, err)
	}
	return m, nil
}

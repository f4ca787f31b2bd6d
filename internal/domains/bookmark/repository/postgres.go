package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinetrip-backend/internal/domains/bookmark/model"
	moviemodel "cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Add(ctx context.Context, userID uuid.UUID, movie *moviemodel.Movie) (*model.Bookmark, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Bookmark, error) {
		// Step 1: parent movie row
		_, err := tx.Exec(ctx, `
			INSERT INTO movies (tmdb_id, title, poster_path)
			VALUES ($1, $2, $3)
			ON CONFLICT (tmdb_id) DO UPDATE SET
				title       = EXCLUDED.title,
				poster_path = COALESCE(EXCLUDED.poster_path, movies.poster_path),
				updated_at  = NOW()`,
			movie.TMDBID, movie.Title, movie.PosterPath)
		if err != nil {
			return nil, fmt.Errorf("upsert movie %d: %w", movie.TMDBID, err)
		}

		// Step 2: bookmark, idempotent
		b := &model.Bookmark{UserID: userID, TMDBID: movie.TMDBID}
		err = tx.QueryRow(ctx, `
			WITH inserted AS (
				INSERT INTO bookmarks (user_id, tmdb_id)
				VALUES ($1, $2)
				ON CONFLICT (user_id, tmdb_id) DO NOTHING
				RETURNING created_at
			)
			SELECT created_at FROM inserted
			UNION ALL
			SELECT created_at FROM bookmarks WHERE user_id = $1 AND tmdb_id = $2
			LIMIT 1`,
			userID, movie.TMDBID).Scan(&b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert bookmark: %w", err)
		}

		// Step 3: joined columns
		if err := tx.QueryRow(ctx, `SELECT title, poster_path FROM movies WHERE tmdb_id = $1`, movie.TMDBID).
			Scan(&b.Title, &b.PosterPath); err != nil {
			return nil, fmt.Errorf("read movie %d: %w", movie.TMDBID, err)
		}
		return b, nil
	})
}

func (r *postgresRepository) Remove(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND tmdb_id = $2`, userID, tmdbID); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND tmdb_id = $2)`, userID, tmdbID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Bookmark, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookmarks WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookmarks: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT b.user_id, b.tmdb_id, m.title, m.poster_path, b.created_at
		FROM bookmarks b
		JOIN movies m ON m.tmdb_id = b.tmdb_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]model.Bookmark, 0, limit)
	for rows.Next() {
		var b model.Bookmark
		if err := rows.Scan(&b.UserID, &b.TMDBID, &b.Title, &b.PosterPath, &b.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, total, rows.Err()
}

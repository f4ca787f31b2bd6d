package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cinetrip-backend/internal/domains/scene/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const selectColumns = `
	id, tmdb_id, name, scene, timestamp, address, country, city, lat, lng, created_at, updated_at
`

func scanLocation(row pgx.Row) (*model.SceneLocation, error) {
	loc := &model.SceneLocation{}
	err := row.Scan(
		&loc.ID,
		&loc.TMDBID,
		&loc.Name,
		&loc.Scene,
		&loc.Timestamp,
		&loc.Address,
		&loc.Country,
		&loc.City,
		&loc.Lat,
		&loc.Lng,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

func (r *postgresRepository) FindByMovieOrdered(ctx context.Context, tmdbID int, limit int) ([]*model.SceneLocation, error) {
	query := `SELECT ` + selectColumns + ` FROM scene_locations WHERE tmdb_id = $1 ORDER BY id ASC`
	args := []interface{}{tmdbID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scene locations for movie %d: %w", tmdbID, err)
	}
	defer rows.Close()

	locations := make([]*model.SceneLocation, 0, model.MaxLocationsPerMovie)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scene location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scene locations: %w", err)
	}

	return locations, nil
}

func (r *postgresRepository) FindByUniqueKey(ctx context.Context, tmdbID int, name string, lat, lng decimal.Decimal) (*model.SceneLocation, error) {
	query := `SELECT ` + selectColumns + `
		FROM scene_locations
		WHERE tmdb_id = $1 AND name = $2 AND lat = $3 AND lng = $4
	`

	loc, err := scanLocation(r.pool.QueryRow(ctx, query,
		tmdbID, name, model.RoundCoordinate(lat), model.RoundCoordinate(lng),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSceneLocationNotFound
		}
		return nil, fmt.Errorf("find scene location by key: %w", err)
	}
	return loc, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, loc *model.SceneLocation) (*model.SceneLocation, error) {
	query := `
		INSERT INTO scene_locations (tmdb_id, name, scene, timestamp, address, country, city, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tmdb_id, name, lat, lng) DO UPDATE SET
			scene      = EXCLUDED.scene,
			timestamp  = EXCLUDED.timestamp,
			address    = EXCLUDED.address,
			country    = EXCLUDED.country,
			city       = EXCLUDED.city,
			updated_at = NOW()
		RETURNING ` + selectColumns

	saved, err := scanLocation(r.pool.QueryRow(ctx, query,
		loc.TMDBID,
		loc.Name,
		loc.Scene,
		loc.Timestamp,
		loc.Address,
		loc.Country,
		loc.City,
		model.RoundCoordinate(loc.Lat),
		model.RoundCoordinate(loc.Lng),
	))
	if err != nil {
		return nil, fmt.Errorf("upsert scene location %q: %w", loc.Name, err)
	}
	return saved, nil
}

func (r *postgresRepository) DeleteAllForMovie(ctx context.Context, tmdbID int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM scene_locations WHERE tmdb_id = $1`, tmdbID); err != nil {
		return fmt.Errorf("delete scene locations for movie %d: %w", tmdbID, err)
	}
	return nil
}

func (r *postgresRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM scene_locations WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete scene locations by id: %w", err)
	}
	return nil
}

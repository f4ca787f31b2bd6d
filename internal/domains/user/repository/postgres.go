package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/user"
	"cinetrip-backend/pkg/cache"
)

const (
	userCacheTTL = 10 * time.Minute

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// postgresRepository implements user.Repository. Single users are cached (cache-aside).
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache // optional
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) user.Repository {
	return &postgresRepository{pool: pool, cache: c}
}

const userColumns = `id, google_sub, email, nickname, profile_image_url, created_at, updated_at`

func cacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.GoogleSub, &u.Email, &u.Nickname, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ========================================
// ACCOUNTS
// ========================================

func (r *postgresRepository) UpsertByGoogleSub(ctx context.Context, u *user.User) (*user.User, error) {
	query := `
		INSERT INTO users (google_sub, email, nickname, profile_image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (google_sub) DO UPDATE
		SET email = EXCLUDED.email,
		    updated_at = NOW()
		RETURNING ` + userColumns

	saved, err := scanUser(r.pool.QueryRow(ctx, query, u.GoogleSub, u.Email, u.Nickname, u.ProfileImageURL))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	r.invalidate(ctx, saved.ID)
	return saved, nil
}

// FindByID reads through the cache.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	// STEP 1: cache
	if r.cache != nil {
		var cached user.User
		found, err := r.cache.Get(ctx, cacheKey(id), &cached)
		if err != nil {
			log.Warn().Err(err).Str("user_id", id.String()).Msg("user cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	// STEP 2: database
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// STEP 3: populate cache, GoogleSub is not serialized
	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey(id), u, userCacheTTL); err != nil {
			log.Warn().Err(err).Str("user_id", id.String()).Msg("user cache write failed")
		}
	}
	return u, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, id uuid.UUID, nickname, profileImageURL *string) (*user.User, error) {
	query := `
		UPDATE users
		SET nickname = COALESCE($2, nickname),
		    profile_image_url = COALESCE($3, profile_image_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, id, nickname, profileImageURL))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	r.invalidate(ctx, id)
	return u, nil
}

func (r *postgresRepository) Stats(ctx context.Context, id uuid.UUID) (*user.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1),
			(SELECT COUNT(*) FROM posts WHERE author_id = $1)`

	var s user.Stats
	if err := r.pool.QueryRow(ctx, query, id).Scan(&s.Followers, &s.Following, &s.Posts); err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("user_id", id.String()).Msg("user cache invalidation failed")
	}
}

// ========================================
// FOLLOWS
// ========================================

func (r *postgresRepository) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, followerID, followingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID); err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (r *postgresRepository) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`,
		followerID, followingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ListFollowers(ctx context.Context, id uuid.UUID, limit, offset int) ([]user.User, int, error) {
	return r.listFollows(ctx, "following_id", "follower_id", id, limit, offset)
}

func (r *postgresRepository) ListFollowing(ctx context.Context, id uuid.UUID, limit, offset int) ([]user.User, int, error) {
	return r.listFollows(ctx, "follower_id", "following_id", id, limit, offset)
}

// listFollows selects users joined on joinCol where matchCol = id. Column names are constants of this file.
func (r *postgresRepository) listFollows(ctx context.Context, matchCol, joinCol string, id uuid.UUID, limit, offset int) ([]user.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM follows WHERE `+matchCol+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count follows: %w", err)
	}

	query := `
		SELECT u.id, u.google_sub, u.email, u.nickname, u.profile_image_url, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.` + joinCol + `
		WHERE f.` + matchCol + ` = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, id, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

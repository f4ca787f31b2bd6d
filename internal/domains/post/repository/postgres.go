package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"cinetrip-backend/internal/domains/post/model"
	"cinetrip-backend/pkg/database"
)

const pgForeignKeyViolation = "23503"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ============================================
// POSTS
// ============================================

func (r *postgresRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (author_id, content, image_urls, tmdb_id, scene_location_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, like_count, comment_count, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.AuthorID, p.Content, pq.Array(p.ImageURLs), p.TMDBID, p.SceneLocationID,
	).Scan(&p.ID, &p.LikeCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return model.ErrUnknownReference
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.PostView, error) {
	query := fmt.Sprintf(`%s WHERE p.id = $2`, selectPosts)

	row := r.pool.QueryRow(ctx, query, viewer, id)
	view, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return view, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.PostView, int, error) {
	countWhere, countArgs := buildWhereClause(filter, 1)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM posts p WHERE %s`, countWhere)
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	// $1 is the viewer, used by the liked_by_me subquery
	whereClause, filterArgs := buildWhereClause(filter, 2)
	args := append([]interface{}{filter.Viewer}, filterArgs...)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		selectPosts, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.PostView, 0, filter.Limit)
	for rows.Next() {
		view, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, total, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*model.LikeResult, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.LikeResult, error) {
		// Step 1: lock the post row so like_count stays consistent
		var count int
		err := tx.QueryRow(ctx, `SELECT like_count FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&count)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock post: %w", err)
		}

		// Step 2: remove an existing like, otherwise add one
		tag, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to unlike: %w", err)
		}
		result := &model.LikeResult{Liked: tag.RowsAffected() == 0}
		delta := -1
		if result.Liked {
			if _, err := tx.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID); err != nil {
				return nil, fmt.Errorf("failed to like: %w", err)
			}
			delta = 1
		}

		// Step 3: counter
		err = tx.QueryRow(ctx, `
			UPDATE posts SET like_count = GREATEST(like_count + $2, 0)
			WHERE id = $1
			RETURNING like_count`, postID, delta).Scan(&result.LikeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to update like count: %w", err)
		}
		return result, nil
	})
}

// ============================================
// COMMENTS
// ============================================

func (r *postgresRepository) CreateComment(ctx context.Context, c *model.Comment) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO comments (post_id, author_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			c.PostID, c.AuthorID, c.Content,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return model.ErrPostNotFound
			}
			return fmt.Errorf("failed to create comment: %w", err)
		}

		if _, err := tx.Exec(ctx, `UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`, c.PostID); err != nil {
			return fmt.Errorf("failed to update comment count: %w", err)
		}

		return tx.QueryRow(ctx, `SELECT id, nickname, profile_image_url FROM users WHERE id = $1`, c.AuthorID).
			Scan(&c.Author.ID, &c.Author.Nickname, &c.Author.ProfileImageURL)
	})
}

func (r *postgresRepository) FindCommentByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	row := r.pool.QueryRow(ctx, selectComments+` WHERE c.id = $1`, id)
	c, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		selectComments+` WHERE c.post_id = $1 ORDER BY c.created_at ASC, c.id ASC LIMIT $2 OFFSET $3`,
		postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0, limit)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, total, rows.Err()
}

func (r *postgresRepository) DeleteComment(ctx context.Context, c *model.Comment) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, c.ID)
		if err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCommentNotFound
		}

		_, err = tx.Exec(ctx, `UPDATE posts SET comment_count = GREATEST(comment_count - 1, 0) WHERE id = $1`, c.PostID)
		if err != nil {
			return fmt.Errorf("failed to update comment count: %w", err)
		}
		return nil
	})
}

// ============================================
// HELPER METHODS
// ============================================

const selectPosts = `
	SELECT p.id, p.author_id, p.content, p.image_urls, p.tmdb_id, p.scene_location_id,
	       p.like_count, p.comment_count, p.created_at, p.updated_at,
	       u.id, u.nickname, u.profile_image_url,
	       ($1::uuid IS NOT NULL AND EXISTS (
	           SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1::uuid
	       )) AS liked_by_me
	FROM posts p
	JOIN users u ON u.id = p.author_id`

const selectComments = `
	SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at,
	       u.id, u.nickname, u.profile_image_url
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func scanPost(row pgx.Row) (*model.PostView, error) {
	var v model.PostView
	err := row.Scan(
		&v.ID, &v.AuthorID, &v.Content, pq.Array(&v.ImageURLs), &v.TMDBID, &v.SceneLocationID,
		&v.LikeCount, &v.CommentCount, &v.CreatedAt, &v.UpdatedAt,
		&v.Author.ID, &v.Author.Nickname, &v.Author.ProfileImageURL,
		&v.LikedByMe,
	)
	if err != nil {
		return nil, err
	}
	if v.ImageURLs == nil {
		v.ImageURLs = []string{}
	}
	return &v, nil
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.ID, &c.Author.Nickname, &c.Author.ProfileImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// buildWhereClause numbers its placeholders from argIndex.
func buildWhereClause(filter model.ListFilter, argIndex int) (string, []interface{}) {
	conditions := []string{"TRUE"}
	args := []interface{}{}

	if filter.FollowedBy != nil {
		conditions = append(conditions, fmt.Sprintf(
			"p.author_id IN (SELECT following_id FROM follows WHERE follower_id = $%d)", argIndex))
		args = append(args, *filter.FollowedBy)
		argIndex++
	}

	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", argIndex))
		args = append(args, *filter.AuthorID)
		argIndex++
	}

	if filter.TMDBID != nil {
		conditions = append(conditions, fmt.Sprintf("p.tmdb_id = $%d", argIndex))
		args = append(args, *filter.TMDBID)
		argIndex++
	}

	if filter.SceneLocationID != nil {
		conditions = append(conditions, fmt.Sprintf("p.scene_location_id = $%d", argIndex))
		args = append(args, *filter.SceneLocationID)
		argIndex++
	}

	if filter.WithImages {
		conditions = append(conditions, "cardinality(p.image_urls) > 0")
	}

	return strings.Join(conditions, " AND "), args
}

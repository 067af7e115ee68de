package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/genre"
	"library-catalog/pkg/cache"
)

// postgresRepository implements genre.Repository with raw SQL over pgxpool.
// The full list is cached: the dedup resolver reads it on every create and
// update, so it is the hottest query in the domain.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) genre.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

const (
	genreCacheKeyPrefix = "genre:"
	genreListCacheKey   = "genres:list"
	cacheTTL            = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, g *genre.Genre) (*genre.Genre, error) {
	query := `
        INSERT INTO genres (name)
        VALUES ($1)
        RETURNING id, name
    `

	var created genre.Genre
	if err := r.pool.QueryRow(ctx, query, g.Name).Scan(&created.ID, &created.Name); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	r.cache.Delete(ctx, genreListCacheKey)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	cacheKey := genreCacheKeyPrefix + id.String()

	var g genre.Genre
	if hit, err := r.cache.Get(ctx, cacheKey, &g); err == nil && hit {
		return &g, nil
	}

	query := `SELECT id, name FROM genres WHERE id = $1`

	if err := r.pool.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, g, cacheTTL)

	return &g, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]genre.Genre, error) {
	var genres []genre.Genre
	if hit, err := r.cache.Get(ctx, genreListCacheKey, &genres); err == nil && hit {
		return genres, nil
	}

	query := `SELECT id, name FROM genres ORDER BY name ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g genre.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genres: %w", err)
	}

	r.cache.Set(ctx, genreListCacheKey, genres, cacheTTL)

	return genres, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *genre.Genre) (*genre.Genre, error) {
	query := `
        UPDATE genres
        SET name = $1
        WHERE id = $2
        RETURNING id, name
    `

	var updated genre.Genre
	if err := r.pool.QueryRow(ctx, query, g.Name, g.ID).Scan(&updated.ID, &updated.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	r.cache.Delete(ctx, genreCacheKeyPrefix+g.ID.String(), genreListCacheKey)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return genre.ErrGenreNotFound
	}

	r.cache.Delete(ctx, genreCacheKeyPrefix+id.String(), genreListCacheKey)

	return nil
}

func (r *postgresRepository) GetBooksInGenre(ctx context.Context, genreID uuid.UUID) ([]genre.BookSummary, error) {
	query := `
        SELECT id, title, summary
        FROM books
        WHERE $1 = ANY(genre_ids)
        ORDER BY title ASC, id ASC
    `

	rows, err := r.pool.Query(ctx, query, genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to query books in genre: %w", err)
	}
	defer rows.Close()

	var books []genre.BookSummary
	for rows.Next() {
		var b genre.BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan book summary: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books in genre: %w", err)
	}

	return books, nil
}

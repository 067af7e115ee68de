package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author"
	"library-catalog/pkg/cache"
)

// postgresRepository implements author.Repository with raw SQL over
// pgxpool, fronted by a Redis cache for by-id and list reads.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorListCacheKey   = "authors:list"
	cacheTTL             = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (first_name, last_name, date_of_birth, date_of_death)
        VALUES ($1, $2, $3, $4)
        RETURNING id, first_name, last_name, date_of_birth, date_of_death
    `

	var created author.Author
	err := r.pool.QueryRow(ctx, query,
		a.FirstName,
		a.LastName,
		a.DateOfBirth,
		a.DateOfDeath,
	).Scan(
		&created.ID,
		&created.FirstName,
		&created.LastName,
		&created.DateOfBirth,
		&created.DateOfDeath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.cache.Delete(ctx, authorListCacheKey)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a author.Author
	if hit, err := r.cache.Get(ctx, cacheKey, &a); err == nil && hit {
		return &a, nil
	}

	query := `
        SELECT id, first_name, last_name, date_of_birth, date_of_death
        FROM authors
        WHERE id = $1
    `

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.DateOfBirth,
		&a.DateOfDeath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	var authors []author.Author
	if hit, err := r.cache.Get(ctx, authorListCacheKey, &authors); err == nil && hit {
		return authors, nil
	}

	query := `
        SELECT id, first_name, last_name, date_of_birth, date_of_death
        FROM authors
        ORDER BY last_name ASC, id ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID,
			&a.FirstName,
			&a.LastName,
			&a.DateOfBirth,
			&a.DateOfDeath,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	r.cache.Set(ctx, authorListCacheKey, authors, cacheTTL)

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        UPDATE authors
        SET first_name = $1, last_name = $2, date_of_birth = $3, date_of_death = $4
        WHERE id = $5
        RETURNING id, first_name, last_name, date_of_birth, date_of_death
    `

	var updated author.Author
	err := r.pool.QueryRow(ctx, query,
		a.FirstName,
		a.LastName,
		a.DateOfBirth,
		a.DateOfDeath,
		a.ID,
	).Scan(
		&updated.ID,
		&updated.FirstName,
		&updated.LastName,
		&updated.DateOfBirth,
		&updated.DateOfDeath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+a.ID.String(), authorListCacheKey)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String(), authorListCacheKey)

	return nil
}

func (r *postgresRepository) GetBooksByAuthor(ctx context.Context, authorID uuid.UUID) ([]author.BookSummary, error) {
	query := `
        SELECT id, title, summary
        FROM books
        WHERE author_id = $1
        ORDER BY title ASC, id ASC
    `

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by author: %w", err)
	}
	defer rows.Close()

	var books []author.BookSummary
	for rows.Next() {
		var b author.BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan book summary: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books by author: %w", err)
	}

	return books, nil
}

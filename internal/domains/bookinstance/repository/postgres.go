package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/bookinstance"
	"library-catalog/pkg/cache"
)

// postgresRepository implements bookinstance.Repository with raw SQL over
// pgxpool.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) bookinstance.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

const (
	instanceCacheKeyPrefix = "bookinstance:"
	instanceListCacheKey   = "bookinstances:list"
	cacheTTL               = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, i *bookinstance.BookInstance) (*bookinstance.BookInstance, error) {
	query := `
        INSERT INTO book_instances (book_id, imprint, status, due_back)
        VALUES ($1, $2, $3, $4)
        RETURNING id, book_id, imprint, status, due_back
    `

	var created bookinstance.BookInstance
	err := r.pool.QueryRow(ctx, query, i.BookID, i.Imprint, i.Status, i.DueBack).
		Scan(&created.ID, &created.BookID, &created.Imprint, &created.Status, &created.DueBack)
	if err != nil {
		return nil, fmt.Errorf("failed to create book instance: %w", err)
	}

	r.cache.Delete(ctx, instanceListCacheKey)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*bookinstance.BookInstance, error) {
	cacheKey := instanceCacheKeyPrefix + id.String()

	var i bookinstance.BookInstance
	if hit, err := r.cache.Get(ctx, cacheKey, &i); err == nil && hit {
		return &i, nil
	}

	query := `SELECT id, book_id, imprint, status, due_back FROM book_instances WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).
		Scan(&i.ID, &i.BookID, &i.Imprint, &i.Status, &i.DueBack)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bookinstance.ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get book instance by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, i, cacheTTL)

	return &i, nil
}

func (r *postgresRepository) GetWithBook(ctx context.Context, id uuid.UUID) (*bookinstance.BookInstance, *bookinstance.BookRef, error) {
	query := `
        SELECT bi.id, bi.book_id, bi.imprint, bi.status, bi.due_back,
               b.id, b.title
        FROM book_instances bi
        JOIN books b ON b.id = bi.book_id
        WHERE bi.id = $1
    `

	var (
		i bookinstance.BookInstance
		b bookinstance.BookRef
	)
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&i.ID, &i.BookID, &i.Imprint, &i.Status, &i.DueBack, &b.ID, &b.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, bookinstance.ErrInstanceNotFound
		}
		return nil, nil, fmt.Errorf("failed to get book instance with book: %w", err)
	}

	return &i, &b, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]bookinstance.ListItem, error) {
	var items []bookinstance.ListItem
	if hit, err := r.cache.Get(ctx, instanceListCacheKey, &items); err == nil && hit {
		return items, nil
	}

	query := `
        SELECT bi.id, bi.imprint, bi.status, bi.due_back,
               b.id, b.title
        FROM book_instances bi
        JOIN books b ON b.id = bi.book_id
        ORDER BY b.title ASC, bi.imprint ASC, bi.id ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query book instances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item bookinstance.ListItem
		if err := rows.Scan(&item.ID, &item.Imprint, &item.Status, &item.DueBack,
			&item.Book.ID, &item.Book.Title); err != nil {
			return nil, fmt.Errorf("failed to scan book instance: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book instances: %w", err)
	}

	r.cache.Set(ctx, instanceListCacheKey, items, cacheTTL)

	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, i *bookinstance.BookInstance) (*bookinstance.BookInstance, error) {
	query := `
        UPDATE book_instances
        SET book_id = $1, imprint = $2, status = $3, due_back = $4
        WHERE id = $5
        RETURNING id, book_id, imprint, status, due_back
    `

	var updated bookinstance.BookInstance
	err := r.pool.QueryRow(ctx, query, i.BookID, i.Imprint, i.Status, i.DueBack, i.ID).
		Scan(&updated.ID, &updated.BookID, &updated.Imprint, &updated.Status, &updated.DueBack)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bookinstance.ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to update book instance: %w", err)
	}

	r.cache.Delete(ctx, instanceCacheKeyPrefix+i.ID.String(), instanceListCacheKey)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM book_instances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book instance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return bookinstance.ErrInstanceNotFound
	}

	r.cache.Delete(ctx, instanceCacheKeyPrefix+id.String(), instanceListCacheKey)

	return nil
}

func (r *postgresRepository) BookExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ListBooks(ctx context.Context) ([]bookinstance.BookRef, error) {
	query := `SELECT id, title FROM books ORDER BY title ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []bookinstance.BookRef
	for rows.Next() {
		var b bookinstance.BookRef
		if err := rows.Scan(&b.ID, &b.Title); err != nil {
			return nil, fmt.Errorf("failed to scan book ref: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

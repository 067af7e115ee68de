package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-catalog/internal/domains/book"
	"library-catalog/pkg/cache"
)

// postgresRepository implements book.Repository with raw SQL over pgxpool.
// The genre set lives in a uuid[] column bound and scanned with pq.Array.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	bookListCacheKey   = "books:list"
	cacheTTL           = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (title, author_id, summary, isbn, genre_ids)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, title, author_id, summary, isbn, genre_ids
    `

	var created book.Book
	err := r.pool.QueryRow(ctx, query,
		b.Title,
		b.AuthorID,
		b.Summary,
		b.ISBN,
		pq.Array(b.GenreIDs),
	).Scan(
		&created.ID,
		&created.Title,
		&created.AuthorID,
		&created.Summary,
		&created.ISBN,
		pq.Array(&created.GenreIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.cache.Delete(ctx, bookListCacheKey)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b book.Book
	if hit, err := r.cache.Get(ctx, cacheKey, &b); err == nil && hit {
		return &b, nil
	}

	query := `
        SELECT id, title, author_id, summary, isbn, genre_ids
        FROM books
        WHERE id = $1
    `

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Summary,
		&b.ISBN,
		pq.Array(&b.GenreIDs),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return &b, nil
}

func (r *postgresRepository) GetResolvedByID(ctx context.Context, id uuid.UUID) (*book.Book, *book.AuthorRef, []book.GenreRef, error) {
	query := `
        SELECT b.id, b.title, b.author_id, b.summary, b.isbn, b.genre_ids,
               a.id, a.first_name, a.last_name
        FROM books b
        JOIN authors a ON b.author_id = a.id
        WHERE b.id = $1
    `

	var (
		b book.Book
		a book.AuthorRef
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Summary,
		&b.ISBN,
		pq.Array(&b.GenreIDs),
		&a.ID,
		&a.FirstName,
		&a.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, book.ErrBookNotFound
		}
		return nil, nil, nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	genres := []book.GenreRef{}
	if len(b.GenreIDs) > 0 {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY name ASC, id ASC`,
			pq.Array(b.GenreIDs),
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to query book genres: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var g book.GenreRef
			if err := rows.Scan(&g.ID, &g.Name); err != nil {
				return nil, nil, nil, fmt.Errorf("failed to scan genre: %w", err)
			}
			genres = append(genres, g)
		}
		if err := rows.Err(); err != nil {
			return nil, nil, nil, fmt.Errorf("error iterating book genres: %w", err)
		}
	}

	return &b, &a, genres, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]book.ListItem, error) {
	var items []book.ListItem
	if hit, err := r.cache.Get(ctx, bookListCacheKey, &items); err == nil && hit {
		return items, nil
	}

	query := `
        SELECT b.id, b.title, a.id, a.first_name, a.last_name
        FROM books b
        JOIN authors a ON b.author_id = a.id
        ORDER BY b.title ASC, b.id ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item book.ListItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Author.ID,
			&item.Author.FirstName,
			&item.Author.LastName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	r.cache.Set(ctx, bookListCacheKey, items, cacheTTL)

	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        UPDATE books
        SET title = $1, author_id = $2, summary = $3, isbn = $4, genre_ids = $5
        WHERE id = $6
        RETURNING id, title, author_id, summary, isbn, genre_ids
    `

	var updated book.Book
	err := r.pool.QueryRow(ctx, query,
		b.Title,
		b.AuthorID,
		b.Summary,
		b.ISBN,
		pq.Array(b.GenreIDs),
		b.ID,
	).Scan(
		&updated.ID,
		&updated.Title,
		&updated.AuthorID,
		&updated.Summary,
		&updated.ISBN,
		pq.Array(&updated.GenreIDs),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+b.ID.String(), bookListCacheKey)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String(), bookListCacheKey)

	return nil
}

func (r *postgresRepository) GetCopies(ctx context.Context, bookID uuid.UUID) ([]book.CopySummary, error) {
	query := `
        SELECT id, imprint, status, due_back
        FROM book_instances
        WHERE book_id = $1
        ORDER BY imprint ASC, id ASC
    `

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query book copies: %w", err)
	}
	defer rows.Close()

	var copies []book.CopySummary
	for rows.Next() {
		var c book.CopySummary
		if err := rows.Scan(&c.ID, &c.Imprint, &c.Status, &c.DueBack); err != nil {
			return nil, fmt.Errorf("failed to scan book copy: %w", err)
		}
		copies = append(copies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book copies: %w", err)
	}

	return copies, nil
}

func (r *postgresRepository) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) MissingGenres(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
        SELECT x.id
        FROM unnest($1::uuid[]) AS x(id)
        WHERE NOT EXISTS (SELECT 1 FROM genres g WHERE g.id = x.id)
    `

	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to check genre existence: %w", err)
	}
	defer rows.Close()

	var missing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan missing genre id: %w", err)
		}
		missing = append(missing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating missing genres: %w", err)
	}

	return missing, nil
}

func (r *postgresRepository) ListAuthors(ctx context.Context) ([]book.AuthorRef, error) {
	query := `
        SELECT id, first_name, last_name
        FROM authors
        ORDER BY last_name ASC, id ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []book.AuthorRef
	for rows.Next() {
		var a book.AuthorRef
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) ListGenres(ctx context.Context) ([]book.GenreRef, error) {
	query := `SELECT id, name FROM genres ORDER BY name ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []book.GenreRef
	for rows.Next() {
		var g book.GenreRef
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genres: %w", err)
	}

	return genres, nil
}

func (r *postgresRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) CountBooks(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM books`)
}

func (r *postgresRepository) CountCopies(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM book_instances`)
}

func (r *postgresRepository) CountAvailableCopies(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM book_instances WHERE status = $1`, "Available")
}

func (r *postgresRepository) CountAuthors(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM authors`)
}

func (r *postgresRepository) CountGenres(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM genres`)
}

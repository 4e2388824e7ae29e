package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"book_repository/internal/common"
	"book_repository/internal/domain/model"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id string) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id string) error

	ListByOwner(ctx context.Context, owner string, limit, offset int) ([]model.Book, int, error)
	Search(ctx context.Context, q model.BookQuery, limit, offset int) ([]model.Book, int, error)

	Count(ctx context.Context) (int, error)
	GenreCounts(ctx context.Context) ([]model.GenreCount, error)
	DeleteByOwner(ctx context.Context, owner string) error
	InsertMany(ctx context.Context, books []model.Book) error
}

type pgBookRepository struct {
	db *sql.DB
}

func NewPgBookRepository(db *sql.DB) BookRepository {
	return &pgBookRepository{db: db}
}

const bookColumns = `id, title, author, year, isbn, short_description, owner,
	creation_date, comments, rating, genre, private, thumbnail`

func (r *pgBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `INSERT INTO books (id, title, author, year, isbn, short_description, owner, comments, rating, genre, private, thumbnail)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.Title, book.Author, book.Year, book.ISBN, book.ShortDescription,
		book.Owner, book.Comments, book.Rating, book.Genre, book.Private, book.Thumbnail,
	)
	if err != nil {
		return fmt.Errorf("pgBookRepository.Create: %w", err)
	}
	return nil
}

func (r *pgBookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	book := &model.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Year, &book.ISBN, &book.ShortDescription,
		&book.Owner, &book.CreationDate, &book.Comments, &book.Rating, &book.Genre,
		&book.Private, &book.Thumbnail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBookRepository.FindByID: %w", err)
	}
	return book, nil
}

func (r *pgBookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `UPDATE books SET
	            title = $1, author = $2, year = $3, isbn = $4, short_description = $5,
	            comments = $6, rating = $7, genre = $8, private = $9, thumbnail = $10
	          WHERE id = $11`
	result, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Year, book.ISBN, book.ShortDescription,
		book.Comments, book.Rating, book.Genre, book.Private, book.Thumbnail, book.ID,
	)
	if err != nil {
		return fmt.Errorf("pgBookRepository.Update: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBookRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgBookRepository.Delete: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBookRepository) ListByOwner(ctx context.Context, owner string, limit, offset int) ([]model.Book, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE owner = $1`, owner).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgBookRepository.ListByOwner: count: %w", err)
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE owner = $1 ORDER BY title ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgBookRepository.ListByOwner: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("pgBookRepository.ListByOwner: %w", err)
	}
	return books, total, nil
}

// Search translates a BookQuery into one of the three query shapes: exact
// ISBN, fuzzy title/author with a minimum rating, or the fuzzy shape plus an
// exact genre. Scope (owner vs. publicly visible) applies to all three.
func (r *pgBookRepository) Search(ctx context.Context, q model.BookQuery, limit, offset int) ([]model.Book, int, error) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Owner != "" {
		conditions = append(conditions, "owner = "+arg(q.Owner))
	}
	if q.PublicOnly {
		conditions = append(conditions, "private = FALSE")
	}

	if q.ISBN != 0 {
		conditions = append(conditions, "isbn = "+arg(q.ISBN))
	} else {
		conditions = append(conditions, "title ILIKE "+arg("%"+q.Title+"%"))
		conditions = append(conditions, "author ILIKE "+arg("%"+q.Author+"%"))
		conditions = append(conditions, "rating >= "+arg(q.MinRating))
		if q.Genre != "" {
			conditions = append(conditions, "genre = "+arg(q.Genre))
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgBookRepository.Search: count: %w", err)
	}

	query := "SELECT " + bookColumns + " FROM books" + where +
		" ORDER BY title ASC, author ASC, rating DESC" +
		" LIMIT " + arg(limit) + " OFFSET " + arg(offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgBookRepository.Search: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("pgBookRepository.Search: %w", err)
	}
	return books, total, nil
}

func (r *pgBookRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgBookRepository.Count: %w", err)
	}
	return count, nil
}

func (r *pgBookRepository) GenreCounts(ctx context.Context) ([]model.GenreCount, error) {
	query := `SELECT genre, COUNT(*) FROM books GROUP BY genre ORDER BY COUNT(*) DESC, genre ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgBookRepository.GenreCounts: %w", err)
	}
	defer rows.Close()

	var counts []model.GenreCount
	for rows.Next() {
		var gc model.GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, fmt.Errorf("pgBookRepository.GenreCounts: scan: %w", err)
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err()
}

func (r *pgBookRepository) DeleteByOwner(ctx context.Context, owner string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("pgBookRepository.DeleteByOwner: %w", err)
	}
	return nil
}

func (r *pgBookRepository) InsertMany(ctx context.Context, books []model.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgBookRepository.InsertMany: begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO books (id, title, author, year, isbn, short_description, owner, comments, rating, genre, private, thumbnail)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, book := range books {
		if _, err := tx.ExecContext(ctx, query,
			book.ID, book.Title, book.Author, book.Year, book.ISBN, book.ShortDescription,
			book.Owner, book.Comments, book.Rating, book.Genre, book.Private, book.Thumbnail,
		); err != nil {
			return fmt.Errorf("pgBookRepository.InsertMany: %w", err)
		}
	}
	return tx.Commit()
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Author, &book.Year, &book.ISBN, &book.ShortDescription,
			&book.Owner, &book.CreationDate, &book.Comments, &book.Rating, &book.Genre,
			&book.Private, &book.Thumbnail,
		); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

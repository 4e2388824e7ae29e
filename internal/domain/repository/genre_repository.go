package repository

import (
	"context"
	"database/sql"
	"fmt"

	"book_repository/internal/domain/model"
)

type GenreRepository interface {
	List(ctx context.Context) ([]model.Genre, error)
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, genres []model.Genre) error
}

type pgGenreRepository struct {
	db *sql.DB
}

func NewPgGenreRepository(db *sql.DB) GenreRepository {
	return &pgGenreRepository{db: db}
}

func (r *pgGenreRepository) List(ctx context.Context) ([]model.Genre, error) {
	query := `SELECT id, genre, slug, icon, description FROM genres ORDER BY genre ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgGenreRepository.List: %w", err)
	}
	defer rows.Close()

	var genres []model.Genre
	for rows.Next() {
		var genre model.Genre
		if err := rows.Scan(&genre.ID, &genre.Genre, &genre.Slug, &genre.Icon, &genre.Description); err != nil {
			return nil, fmt.Errorf("pgGenreRepository.List: scan: %w", err)
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

func (r *pgGenreRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM genres`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgGenreRepository.Count: %w", err)
	}
	return count, nil
}

func (r *pgGenreRepository) InsertMany(ctx context.Context, genres []model.Genre) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgGenreRepository.InsertMany: begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO genres (id, genre, slug, icon, description) VALUES ($1, $2, $3, $4, $5)`
	for _, genre := range genres {
		if _, err := tx.ExecContext(ctx, query,
			genre.ID, genre.Genre, genre.Slug, genre.Icon, genre.Description,
		); err != nil {
			return fmt.Errorf("pgGenreRepository.InsertMany: %w", err)
		}
	}
	return tx.Commit()
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"book_repository/internal/common"
	"book_repository/internal/common/security"
	"book_repository/internal/domain/model"
	"book_repository/internal/domain/repository"
	"book_repository/internal/platform/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// BootstrapService creates the privileged admin account and loads the
// reference data at startup. The genre and sample-book loaders are also
// reachable from the admin dashboard; all of them are idempotent.
type BootstrapService struct {
	userRepo  repository.UserRepository
	bookRepo  repository.BookRepository
	genreRepo repository.GenreRepository
	cfg       *config.Config
}

func NewBootstrapService(userRepo repository.UserRepository, bookRepo repository.BookRepository, genreRepo repository.GenreRepository, cfg *config.Config) *BootstrapService {
	return &BootstrapService{userRepo: userRepo, bookRepo: bookRepo, genreRepo: genreRepo, cfg: cfg}
}

// Run performs the startup bootstrap: admin account plus genre reference
// list, each a no-op when already present.
func (s *BootstrapService) Run(ctx context.Context) error {
	if err := s.EnsureAdmin(ctx); err != nil {
		return err
	}
	return s.EnsureGenres(ctx)
}

// EnsureAdmin creates the bootstrap admin from environment-supplied
// credentials if no such account exists yet.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	_, err := s.userRepo.FindByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	log.Println("Admin user is created on application startup if user does not exist.")

	hashed, err := security.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	now := time.Now().UTC()
	admin := &model.User{
		ID:               uuid.NewString(),
		Username:         s.cfg.AdminUsername,
		Email:            s.cfg.MailDefaultSender,
		HashedPassword:   hashed,
		FirstName:        "Administrator",
		LastName:         "Administrator",
		Active:           true,
		EmailConfirmedAt: &now,
		Roles:            []string{model.RoleUser, model.RoleAdmin},
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

// EnsureGenres loads the genre reference list from the bundled seed file when
// the genres table is empty.
func (s *BootstrapService) EnsureGenres(ctx context.Context) error {
	count, err := s.genreRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count genres: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.LoadGenres(ctx)
}

type genreSeed struct {
	Genre       string `json:"genre"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// LoadGenres reads the genre seed file and inserts every entry. A no-op when
// the genres table is already populated.
func (s *BootstrapService) LoadGenres(ctx context.Context) error {
	count, err := s.genreRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count genres: %w", err)
	}
	if count > 0 {
		log.Println("Genres Collection already created.")
		return nil
	}

	data, err := os.ReadFile(s.cfg.GenreSeedFile)
	if err != nil {
		log.Printf("Genre file can't be found: %v", err)
		return fmt.Errorf("genre seed file %s: %w", s.cfg.GenreSeedFile, common.ErrNotFound)
	}

	var seeds []genreSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse genre seed file: %w", err)
	}

	genres := make([]model.Genre, 0, len(seeds))
	for _, seed := range seeds {
		genres = append(genres, model.Genre{
			ID:          uuid.NewString(),
			Genre:       seed.Genre,
			Slug:        slug.Make(seed.Genre),
			Icon:        seed.Icon,
			Description: seed.Description,
		})
	}
	if err := s.genreRepo.InsertMany(ctx, genres); err != nil {
		log.Printf("Genres Collection NOT created: %v", err)
		return fmt.Errorf("failed to insert genres: %w", err)
	}
	log.Println("Genres Collection successfully created.")
	return nil
}

type bookSeed struct {
	Title            string `json:"title"`
	Author           string `json:"author"`
	Year             int    `json:"year"`
	ISBN             int64  `json:"isbn"`
	ShortDescription string `json:"short_description"`
	Owner            string `json:"owner"`
	Comments         string `json:"comments"`
	Rating           int    `json:"rating"`
	Genre            string `json:"genre"`
	Private          bool   `json:"private"`
}

// LoadBooks inserts the bundled sample books. A no-op when any book exists.
func (s *BootstrapService) LoadBooks(ctx context.Context) error {
	count, err := s.bookRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		log.Println("Sample Book Collection already created.")
		return nil
	}

	data, err := os.ReadFile(s.cfg.BookSeedFile)
	if err != nil {
		log.Printf("Book file can't be found: %v", err)
		return fmt.Errorf("book seed file %s: %w", s.cfg.BookSeedFile, common.ErrNotFound)
	}

	var seeds []bookSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse book seed file: %w", err)
	}

	sampleBooks := make([]model.Book, 0, len(seeds))
	for _, seed := range seeds {
		owner := seed.Owner
		if owner == "" {
			owner = s.cfg.AdminUsername
		}
		sampleBooks = append(sampleBooks, model.Book{
			ID:               uuid.NewString(),
			Title:            seed.Title,
			Author:           seed.Author,
			Year:             seed.Year,
			ISBN:             seed.ISBN,
			ShortDescription: seed.ShortDescription,
			Owner:            owner,
			Comments:         seed.Comments,
			Rating:           seed.Rating,
			Genre:            seed.Genre,
			Private:          seed.Private,
			Thumbnail:        model.DefaultThumbnail,
		})
	}
	if err := s.bookRepo.InsertMany(ctx, sampleBooks); err != nil {
		log.Printf("Book Collection NOT created: %v", err)
		return fmt.Errorf("failed to insert sample books: %w", err)
	}
	log.Println("Book Collection successfully created.")
	return nil
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"book_repository/internal/common/security"
	"book_repository/internal/domain/model"
	"book_repository/internal/platform/config"
)

func writeSeedFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func newBootstrap(t *testing.T) (*BootstrapService, *fakeUserRepo, *fakeBookRepo, *fakeGenreRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	bookRepo := newFakeBookRepo()
	genreRepo := &fakeGenreRepo{}
	cfg := &config.Config{
		AdminUsername:     "admin",
		AdminPassword:     "bootstrap secret",
		MailDefaultSender: "admin@example.com",
		GenreSeedFile: writeSeedFile(t, "genre.json",
			`[{"genre": "Fantasy", "icon": "auto_fix_high", "description": "Magic."},
			  {"genre": "Poetry", "icon": "format_quote", "description": "Verse."}]`),
		BookSeedFile: writeSeedFile(t, "book.json",
			`[{"title": "Dune", "author": "Frank Herbert", "year": 1965, "isbn": 9780441172719, "rating": 9, "genre": "Science Fiction"}]`),
	}
	return NewBootstrapService(userRepo, bookRepo, genreRepo, cfg), userRepo, bookRepo, genreRepo
}

func TestBootstrapCreatesAdminOnce(t *testing.T) {
	svc, userRepo, _, _ := newBootstrap(t)

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	admin, err := userRepo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if !admin.HasRole(model.RoleAdmin) || !admin.HasRole(model.RoleUser) {
		t.Fatalf("admin roles = %v", admin.Roles)
	}
	if !admin.Active {
		t.Fatal("admin not active")
	}
	if admin.Email != "admin@example.com" {
		t.Fatalf("admin email = %q", admin.Email)
	}
	if !security.CheckPasswordHash("bootstrap secret", admin.HashedPassword) {
		t.Fatal("admin password does not verify")
	}

	// Second run is a no-op.
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	count, err := userRepo.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("user count = %d after double bootstrap", count)
	}
}

func TestLoadGenresIsIdempotent(t *testing.T) {
	svc, _, _, genreRepo := newBootstrap(t)

	if err := svc.LoadGenres(context.Background()); err != nil {
		t.Fatalf("load genres: %v", err)
	}
	genres, err := genreRepo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(genres) != 2 {
		t.Fatalf("genre count = %d, want 2", len(genres))
	}
	if genres[0].Slug == "" {
		t.Fatal("genre slug not derived")
	}

	if err := svc.LoadGenres(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	genres, _ = genreRepo.List(context.Background())
	if len(genres) != 2 {
		t.Fatalf("genre count = %d after double load", len(genres))
	}
}

func TestLoadBooksIsIdempotent(t *testing.T) {
	svc, _, bookRepo, _ := newBootstrap(t)

	if err := svc.LoadBooks(context.Background()); err != nil {
		t.Fatalf("load books: %v", err)
	}
	count, err := bookRepo.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("book count = %d, want 1", count)
	}

	if err := svc.LoadBooks(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	count, _ = bookRepo.Count(context.Background())
	if count != 1 {
		t.Fatalf("book count = %d after double load", count)
	}

	// Ownerless seed books default to the bootstrap admin with the
	// placeholder thumbnail.
	books, _, err := bookRepo.ListByOwner(context.Background(), "admin", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("admin books = %d", len(books))
	}
	if books[0].Thumbnail != model.DefaultThumbnail {
		t.Fatalf("thumbnail = %q", books[0].Thumbnail)
	}
}

func TestLoadGenresMissingFile(t *testing.T) {
	svc := NewBootstrapService(newFakeUserRepo(), newFakeBookRepo(), &fakeGenreRepo{}, &config.Config{
		AdminUsername: "admin",
		GenreSeedFile: "does/not/exist.json",
	})
	if err := svc.LoadGenres(context.Background()); err == nil {
		t.Fatal("expected error for missing seed file")
	}
}

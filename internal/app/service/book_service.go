package service

import (
	"context"
	"fmt"
	"log"

	"book_repository/internal/common"
	"book_repository/internal/domain/model"
	"book_repository/internal/domain/repository"
	"book_repository/internal/platform/books"

	"github.com/google/uuid"
)

// BooksPageSize is the fixed page size for book listings and search results.
const BooksPageSize = 7

type BookService struct {
	bookRepo   repository.BookRepository
	genreRepo  repository.GenreRepository
	thumbnails books.ThumbnailFetcher
}

func NewBookService(bookRepo repository.BookRepository, genreRepo repository.GenreRepository, thumbnails books.ThumbnailFetcher) *BookService {
	return &BookService{bookRepo: bookRepo, genreRepo: genreRepo, thumbnails: thumbnails}
}

type BookRequest struct {
	Title            string `json:"title" validate:"required,max=250"`
	Author           string `json:"author" validate:"max=250"`
	Year             int    `json:"year" validate:"gte=0,lte=9999"`
	ISBN             int64  `json:"isbn" validate:"gte=0,lt=10000000000000"`
	ShortDescription string `json:"short_description" validate:"max=2000"`
	Comments         string `json:"comments" validate:"max=3500"`
	Rating           int    `json:"rating" validate:"gte=0,lte=10"`
	Genre            string `json:"genre"`
	Private          bool   `json:"private"`
}

// ListByOwner returns one page of the owner's books, ordered by title.
func (s *BookService) ListByOwner(ctx context.Context, owner string, page int) ([]model.Book, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * BooksPageSize
	return s.bookRepo.ListByOwner(ctx, owner, BooksPageSize, offset)
}

// Create stores a new book owned by the given account. The thumbnail lookup
// is opportunistic: on any failure the placeholder cover is used and the save
// proceeds.
func (s *BookService) Create(ctx context.Context, owner string, req BookRequest) (*model.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	book := &model.Book{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Author:           req.Author,
		Year:             req.Year,
		ISBN:             req.ISBN,
		ShortDescription: req.ShortDescription,
		Owner:            owner,
		Comments:         req.Comments,
		Rating:           req.Rating,
		Genre:            req.Genre,
		Private:          req.Private,
	}
	book.Thumbnail = s.lookupThumbnail(ctx, owner, book.Title, book.ISBN)

	if err := s.bookRepo.Create(ctx, book); err != nil {
		log.Printf("%s did not succeed in saving the book %s: %v", owner, book.Title, err)
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	log.Printf("%s saved the book %s with the id %s", owner, book.Title, book.ID)
	return book, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*model.Book, error) {
	return s.bookRepo.FindByID(ctx, id)
}

// Update overwrites a book's fields and repeats the opportunistic thumbnail
// refresh done at creation.
func (s *BookService) Update(ctx context.Context, actor, id string, req BookRequest) (*model.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = req.Title
	book.Author = req.Author
	book.Year = req.Year
	book.ISBN = req.ISBN
	book.ShortDescription = req.ShortDescription
	book.Comments = req.Comments
	book.Rating = req.Rating
	book.Genre = req.Genre
	book.Private = req.Private
	book.Thumbnail = s.lookupThumbnail(ctx, actor, book.Title, book.ISBN)

	if err := s.bookRepo.Update(ctx, book); err != nil {
		log.Printf("%s did not update the book %s with the id %s: %v", actor, book.Title, book.ID, err)
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	log.Printf("%s updated the book %s with the id %s", actor, book.Title, book.ID)
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, actor, id string) error {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookRepo.Delete(ctx, book.ID); err != nil {
		log.Printf("%s did not delete the book %s with the id %s: %v", actor, book.Title, book.ID, err)
		return fmt.Errorf("failed to delete book: %w", err)
	}
	log.Printf("%s deleted the book %s with the id %s", actor, book.Title, book.ID)
	return nil
}

func (s *BookService) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return s.genreRepo.List(ctx)
}

func (s *BookService) lookupThumbnail(ctx context.Context, actor, title string, isbn int64) string {
	thumbnail, err := s.thumbnails.FetchThumbnail(ctx, isbn)
	if err != nil {
		log.Printf("%s has not successfully requested the thumbnail image for the book %s: %v", actor, title, err)
		return model.DefaultThumbnail
	}
	log.Printf("%s has successfully requested the thumbnail image %s for the book %s", actor, thumbnail, title)
	return thumbnail
}

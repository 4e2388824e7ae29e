package service

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"book_repository/internal/domain/model"
	"book_repository/internal/domain/repository"
)

// CriteriaStore holds each user's submitted search criteria for the lifetime
// of their session.
type CriteriaStore interface {
	Save(ctx context.Context, username string, criteria model.SearchCriteria) error
	Get(ctx context.Context, username string) (model.SearchCriteria, error)
}

type SearchService struct {
	bookRepo repository.BookRepository
	criteria CriteriaStore
}

func NewSearchService(bookRepo repository.BookRepository, criteria CriteriaStore) *SearchService {
	return &SearchService{bookRepo: bookRepo, criteria: criteria}
}

// SaveCriteria stores the search form submission so the paginated results
// endpoint can replay it.
func (s *SearchService) SaveCriteria(ctx context.Context, username string, criteria model.SearchCriteria) error {
	if err := s.criteria.Save(ctx, username, criteria); err != nil {
		return fmt.Errorf("failed to save search criteria: %w", err)
	}
	log.Printf("%s is searching for books matching %+v", username, criteria)
	return nil
}

// Results reads the stored criteria back and runs the matching query shape.
// Private searches are scoped to the requesting user's own books; public
// searches cover all publicly visible books regardless of owner.
func (s *SearchService) Results(ctx context.Context, username string, page int) ([]model.Book, int, error) {
	criteria, err := s.criteria.Get(ctx, username)
	if err != nil {
		return nil, 0, err
	}

	query := BuildQuery(username, criteria)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * BooksPageSize
	return s.bookRepo.Search(ctx, query, BooksPageSize, offset)
}

// BuildQuery maps raw criteria onto a repository BookQuery. ISBN and rating
// parse leniently: anything non-numeric disables the ISBN branch and drops
// the rating floor to zero.
func BuildQuery(username string, criteria model.SearchCriteria) model.BookQuery {
	isbn, err := strconv.ParseInt(criteria.ISBN, 10, 64)
	if err != nil {
		isbn = 0
	}
	rating, err := strconv.Atoi(criteria.Rating)
	if err != nil {
		rating = 0
	}

	query := model.BookQuery{
		ISBN:      isbn,
		Title:     criteria.Title,
		Author:    criteria.Author,
		MinRating: rating,
		Genre:     criteria.Genre,
	}
	if criteria.Private {
		query.Owner = username
	} else {
		query.PublicOnly = true
	}
	return query
}

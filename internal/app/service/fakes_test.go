package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"book_repository/internal/common"
	"book_repository/internal/domain/model"
)

// In-memory repository doubles. fakeBookRepo implements the real query
// semantics (filtering, ordering, paging) so the search and pagination
// properties are exercised end to end without a database.

type fakeUserRepo struct {
	users map[string]*model.User // keyed by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return common.ErrConflict
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	var all []model.User
	for _, user := range r.users {
		all = append(all, *user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return page(all, limit, offset), nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeBookRepo struct {
	books map[string]*model.Book // keyed by ID
	fail  bool                   // force persistence failures
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]*model.Book)}
}

func (r *fakeBookRepo) Create(ctx context.Context, book *model.Book) error {
	if r.fail {
		return fmt.Errorf("forced create failure")
	}
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id string) (*model.Book, error) {
	if book, ok := r.books[id]; ok {
		clone := *book
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeBookRepo) Update(ctx context.Context, book *model.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return common.ErrNotFound
	}
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) ListByOwner(ctx context.Context, owner string, limit, offset int) ([]model.Book, int, error) {
	var matched []model.Book
	for _, book := range r.books {
		if book.Owner == owner {
			matched = append(matched, *book)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	return page(matched, limit, offset), len(matched), nil
}

func (r *fakeBookRepo) Search(ctx context.Context, q model.BookQuery, limit, offset int) ([]model.Book, int, error) {
	var matched []model.Book
	for _, book := range r.books {
		if q.Owner != "" && book.Owner != q.Owner {
			continue
		}
		if q.PublicOnly && book.Private {
			continue
		}
		if q.ISBN != 0 {
			if book.ISBN != q.ISBN {
				continue
			}
		} else {
			if !strings.Contains(strings.ToLower(book.Title), strings.ToLower(q.Title)) {
				continue
			}
			if !strings.Contains(strings.ToLower(book.Author), strings.ToLower(q.Author)) {
				continue
			}
			if book.Rating < q.MinRating {
				continue
			}
			if q.Genre != "" && book.Genre != q.Genre {
				continue
			}
		}
		matched = append(matched, *book)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Title != matched[j].Title {
			return matched[i].Title < matched[j].Title
		}
		if matched[i].Author != matched[j].Author {
			return matched[i].Author < matched[j].Author
		}
		return matched[i].Rating > matched[j].Rating
	})
	return page(matched, limit, offset), len(matched), nil
}

func (r *fakeBookRepo) Count(ctx context.Context) (int, error) {
	return len(r.books), nil
}

func (r *fakeBookRepo) GenreCounts(ctx context.Context) ([]model.GenreCount, error) {
	byGenre := make(map[string]int)
	for _, book := range r.books {
		byGenre[book.Genre]++
	}
	var counts []model.GenreCount
	for genre, count := range byGenre {
		counts = append(counts, model.GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Genre < counts[j].Genre
	})
	return counts, nil
}

func (r *fakeBookRepo) DeleteByOwner(ctx context.Context, owner string) error {
	for id, book := range r.books {
		if book.Owner == owner {
			delete(r.books, id)
		}
	}
	return nil
}

func (r *fakeBookRepo) InsertMany(ctx context.Context, books []model.Book) error {
	for _, book := range books {
		clone := book
		r.books[book.ID] = &clone
	}
	return nil
}

type fakeGenreRepo struct {
	genres []model.Genre
}

func (r *fakeGenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	return append([]model.Genre(nil), r.genres...), nil
}

func (r *fakeGenreRepo) Count(ctx context.Context) (int, error) {
	return len(r.genres), nil
}

func (r *fakeGenreRepo) InsertMany(ctx context.Context, genres []model.Genre) error {
	r.genres = append(r.genres, genres...)
	return nil
}

type fakeCriteriaStore struct {
	saved map[string]model.SearchCriteria
}

func newFakeCriteriaStore() *fakeCriteriaStore {
	return &fakeCriteriaStore{saved: make(map[string]model.SearchCriteria)}
}

func (s *fakeCriteriaStore) Save(ctx context.Context, username string, criteria model.SearchCriteria) error {
	s.saved[username] = criteria
	return nil
}

func (s *fakeCriteriaStore) Get(ctx context.Context, username string) (model.SearchCriteria, error) {
	criteria, ok := s.saved[username]
	if !ok {
		return model.SearchCriteria{}, common.ErrNotFound
	}
	return criteria, nil
}

// fakeThumbnails returns a fixed URL, or an error when broken.
type fakeThumbnails struct {
	url    string
	broken bool
	calls  int
}

func (f *fakeThumbnails) FetchThumbnail(ctx context.Context, isbn int64) (string, error) {
	f.calls++
	if f.broken {
		return "", fmt.Errorf("thumbnail lookup is down")
	}
	return f.url, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

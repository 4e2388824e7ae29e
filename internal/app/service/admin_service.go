package service

import (
	"context"
	"fmt"
	"log"

	"book_repository/internal/common"
	"book_repository/internal/common/security"
	"book_repository/internal/domain/model"
	"book_repository/internal/domain/repository"
)

// UsersPageSize is the fixed page size for the admin user listing.
const UsersPageSize = 10

type AdminService struct {
	userRepo       repository.UserRepository
	bookRepo       repository.BookRepository
	bootstrapAdmin string
}

func NewAdminService(userRepo repository.UserRepository, bookRepo repository.BookRepository, bootstrapAdmin string) *AdminService {
	return &AdminService{userRepo: userRepo, bookRepo: bookRepo, bootstrapAdmin: bootstrapAdmin}
}

type Dashboard struct {
	Users       []model.User       `json:"users"`
	UserCount   int                `json:"user_count"`
	BookCount   int                `json:"book_count"`
	GenreCounts []model.GenreCount `json:"genre_counts"`
}

// Dashboard aggregates the admin overview: one page of users ordered by
// username, total counts, and books-per-genre sorted by descending count
// (ties broken by genre label).
func (s *AdminService) Dashboard(ctx context.Context, page int) (*Dashboard, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * UsersPageSize

	users, err := s.userRepo.List(ctx, UsersPageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].HashedPassword = ""
	}

	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	bookCount, err := s.bookRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	genreCounts, err := s.bookRepo.GenreCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count books per genre: %w", err)
	}

	return &Dashboard{
		Users:       users,
		UserCount:   userCount,
		BookCount:   bookCount,
		GenreCounts: genreCounts,
	}, nil
}

type UpdateUserRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	FirstName       string `json:"first_name" validate:"max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	Active          bool   `json:"active"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// UpdateUser overwrites a user's profile fields. The bootstrap admin can
// never be deactivated, and the password is re-hashed only when it actually
// changed: the profile form echoes the stored bcrypt hash back when the
// field is untouched.
func (s *AdminService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Password != req.PasswordConfirm {
		return nil, fmt.Errorf("passwords did not match for %s: %w", user.Username, common.ErrValidation)
	}

	// An untouched password field echoes the stored hash back; only re-hash
	// when the value actually changed.
	if req.Password != user.HashedPassword || !security.IsHashed(req.Password) {
		hashed, err := security.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if user.Username == s.bootstrapAdmin {
		user.Active = true
	} else {
		user.Active = req.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	log.Printf("user %s profile updated", user.Username)

	user.HashedPassword = ""
	return user, nil
}

// DeleteUser removes a non-bootstrap account together with all of its books.
func (s *AdminService) DeleteUser(ctx context.Context, actor, id string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Username == s.bootstrapAdmin {
		return fmt.Errorf("the bootstrap admin account cannot be deleted: %w", common.ErrForbidden)
	}

	if err := s.bookRepo.DeleteByOwner(ctx, user.Username); err != nil {
		log.Printf("%s did not delete the user %s: %v", actor, user.Username, err)
		return fmt.Errorf("failed to delete user's books: %w", err)
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		log.Printf("%s did not delete the user %s: %v", actor, user.Username, err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	log.Printf("%s deleted the user %s", actor, user.Username)
	return nil
}

// DeleteAccount is the self-service variant: the user removes their own
// account and every book they own.
func (s *AdminService) DeleteAccount(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.bookRepo.DeleteByOwner(ctx, user.Username); err != nil {
		log.Printf("%s is still alive and active on the Book Repository: %v", username, err)
		return fmt.Errorf("failed to delete account's books: %w", err)
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		log.Printf("%s is still alive and active on the Book Repository: %v", username, err)
		return fmt.Errorf("failed to delete account: %w", err)
	}
	log.Printf("%s has left the Book Repository", username)
	return nil
}

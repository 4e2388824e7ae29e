package service

import (
	"context"
	"testing"
	"time"

	"book_repository/internal/common/security"
	"book_repository/internal/domain/model"

	"github.com/google/uuid"
)

func addUser(t *testing.T, repo *fakeUserRepo, username string, roles ...string) *model.User {
	t.Helper()
	hashed, err := security.HashPassword("original password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if len(roles) == 0 {
		roles = []string{model.RoleUser}
	}
	now := time.Now().UTC()
	user := &model.User{
		ID:               uuid.NewString(),
		Username:         username,
		Email:            username + "@example.com",
		HashedPassword:   hashed,
		Active:           true,
		EmailConfirmedAt: &now,
		Roles:            roles,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestDashboardAggregation(t *testing.T) {
	userRepo := newFakeUserRepo()
	bookRepo := newFakeBookRepo()
	svc := NewAdminService(userRepo, bookRepo, "admin")

	addUser(t, userRepo, "admin", model.RoleUser, model.RoleAdmin)
	addUser(t, userRepo, "naoise")

	seed := []model.Book{
		{ID: "1", Genre: "Fantasy", Owner: "naoise"},
		{ID: "2", Genre: "Fantasy", Owner: "naoise"},
		{ID: "3", Genre: "Classics", Owner: "naoise"},
		{ID: "4", Genre: "Poetry", Owner: "admin"},
		{ID: "5", Genre: "Classics", Owner: "admin"},
	}
	if err := bookRepo.InsertMany(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	dashboard, err := svc.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.UserCount != 2 || dashboard.BookCount != 5 {
		t.Fatalf("counts = %d users / %d books", dashboard.UserCount, dashboard.BookCount)
	}
	// Count desc, ties broken by label asc.
	want := []model.GenreCount{{Genre: "Classics", Count: 2}, {Genre: "Fantasy", Count: 2}, {Genre: "Poetry", Count: 1}}
	if len(dashboard.GenreCounts) != len(want) {
		t.Fatalf("genre counts = %+v", dashboard.GenreCounts)
	}
	for i, gc := range want {
		if dashboard.GenreCounts[i] != gc {
			t.Fatalf("genre counts[%d] = %+v, want %+v", i, dashboard.GenreCounts[i], gc)
		}
	}
	for _, user := range dashboard.Users {
		if user.HashedPassword != "" {
			t.Fatal("hashed password leaked in dashboard")
		}
	}
}

func TestUpdateUserKeepsBootstrapAdminActive(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAdminService(userRepo, newFakeBookRepo(), "admin")
	admin := addUser(t, userRepo, "admin", model.RoleUser, model.RoleAdmin)

	updated, err := svc.UpdateUser(context.Background(), admin.ID, UpdateUserRequest{
		Email:           "admin@example.com",
		Active:          false, // must be ignored for the bootstrap admin
		Password:        "new password",
		PasswordConfirm: "new password",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Active {
		t.Fatal("bootstrap admin was deactivated")
	}
}

func TestUpdateUserPasswordRehashOnlyWhenChanged(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAdminService(userRepo, newFakeBookRepo(), "admin")
	user := addUser(t, userRepo, "naoise")
	originalHash := user.HashedPassword

	// Echoing the stored hash back means "unchanged": keep it as is.
	if _, err := svc.UpdateUser(context.Background(), user.ID, UpdateUserRequest{
		Email:           user.Email,
		Active:          true,
		Password:        originalHash,
		PasswordConfirm: originalHash,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err := userRepo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.HashedPassword != originalHash {
		t.Fatal("unchanged password was re-hashed")
	}

	// A plaintext value means "changed": hash it.
	if _, err := svc.UpdateUser(context.Background(), user.ID, UpdateUserRequest{
		Email:           user.Email,
		Active:          true,
		Password:        "brand new password",
		PasswordConfirm: "brand new password",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err = userRepo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.HashedPassword == originalHash {
		t.Fatal("changed password kept the old hash")
	}
	if !security.CheckPasswordHash("brand new password", stored.HashedPassword) {
		t.Fatal("new password does not verify")
	}
}

func TestUpdateUserPasswordMismatch(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAdminService(userRepo, newFakeBookRepo(), "admin")
	user := addUser(t, userRepo, "naoise")

	if _, err := svc.UpdateUser(context.Background(), user.ID, UpdateUserRequest{
		Email:           user.Email,
		Password:        "one",
		PasswordConfirm: "another",
	}); err == nil {
		t.Fatal("expected mismatch rejection")
	}
}

func TestDeleteUserCascadesBooks(t *testing.T) {
	userRepo := newFakeUserRepo()
	bookRepo := newFakeBookRepo()
	svc := NewAdminService(userRepo, bookRepo, "admin")
	victim := addUser(t, userRepo, "naoise")

	seed := []model.Book{
		{ID: "1", Title: "Mine", Owner: "naoise"},
		{ID: "2", Title: "Also mine", Owner: "naoise"},
		{ID: "3", Title: "Not mine", Owner: "someone_else"},
	}
	if err := bookRepo.InsertMany(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), "admin", victim.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := userRepo.FindByUsername(context.Background(), "naoise"); err == nil {
		t.Fatal("user still exists")
	}
	_, total, err := bookRepo.ListByOwner(context.Background(), "naoise", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Fatalf("%d orphaned books remain", total)
	}
	if _, err := bookRepo.FindByID(context.Background(), "3"); err != nil {
		t.Fatal("someone else's book was deleted")
	}
}

func TestDeleteUserRefusesBootstrapAdmin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAdminService(userRepo, newFakeBookRepo(), "admin")
	admin := addUser(t, userRepo, "admin", model.RoleUser, model.RoleAdmin)

	if err := svc.DeleteUser(context.Background(), "admin", admin.ID); err == nil {
		t.Fatal("bootstrap admin deletion must be refused")
	}
}

func TestDeleteAccountCascadesBooks(t *testing.T) {
	userRepo := newFakeUserRepo()
	bookRepo := newFakeBookRepo()
	svc := NewAdminService(userRepo, bookRepo, "admin")
	addUser(t, userRepo, "naoise")

	if err := bookRepo.InsertMany(context.Background(), []model.Book{{ID: "1", Owner: "naoise"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.DeleteAccount(context.Background(), "naoise"); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := userRepo.FindByUsername(context.Background(), "naoise"); err == nil {
		t.Fatal("account still exists")
	}
	count, err := bookRepo.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d orphaned books remain", count)
	}
}

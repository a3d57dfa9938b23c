package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/access"
	"media-review/internal/data/entity"
	"media-review/internal/dto/request"
)

func seedUser(t *testing.T, users *fakeUserRepo, username string, role entity.UserRole, superuser bool) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:    username,
		Email:       username + "@example.com",
		Role:        role,
		IsSuperuser: superuser,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func callerFor(user *entity.User) *access.Caller {
	return &access.Caller{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}

func TestUpdateOwnProfileDropsRoleForRegularUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, users, "bob", entity.RoleUser, false)

	bio := "keeps bees"
	role := "admin"
	resp, err := svc.UpdateOwnProfile(ctx, callerFor(user), &request.UpdateUserRequest{
		Bio:  &bio,
		Role: &role,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	// The role escalation is dropped while the rest of the patch lands.
	if resp.Role != string(entity.RoleUser) {
		t.Fatalf("expected role to stay %q, got %q", entity.RoleUser, resp.Role)
	}
	if resp.Bio == nil || *resp.Bio != bio {
		t.Fatalf("expected bio %q to be saved, got %v", bio, resp.Bio)
	}

	stored, _ := users.FindByUsername(ctx, "bob")
	if stored.Role != entity.RoleUser {
		t.Fatalf("stored role changed to %q", stored.Role)
	}
}

func TestUpdateOwnProfileRoleForSuperuserAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name      string
		role      entity.UserRole
		superuser bool
		applied   bool
	}{
		{"plain admin", entity.RoleAdmin, false, false},
		{"superuser admin", entity.RoleAdmin, true, true},
		{"superuser non-admin", entity.RoleUser, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := seedUser(t, users, "u-"+uuid.NewString()[:8], tc.role, tc.superuser)

			role := "moderator"
			resp, err := svc.UpdateOwnProfile(ctx, callerFor(user), &request.UpdateUserRequest{Role: &role})
			if err != nil {
				t.Fatalf("update profile: %v", err)
			}

			want := string(tc.role)
			if tc.applied {
				want = role
			}
			if resp.Role != want {
				t.Fatalf("expected role %q, got %q", want, resp.Role)
			}
		})
	}
}

func TestAdminUserManagement(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &request.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "moderator",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.Role != "moderator" {
		t.Fatalf("expected role moderator, got %q", created.Role)
	}

	// Admin endpoint applies role changes unconditionally.
	role := "admin"
	updated, err := svc.Update(ctx, "alice", &request.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Role != "admin" {
		t.Fatalf("expected role admin, got %q", updated.Role)
	}

	if _, err := svc.Create(ctx, &request.CreateUserRequest{
		Username: "alice",
		Email:    "other@example.com",
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate username, got %v", err)
	}

	if _, err := svc.GetByUsername(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, "alice"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := svc.GetByUsername(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateUserRejectsReservedUsername(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "me",
		Email:    "me@example.com",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

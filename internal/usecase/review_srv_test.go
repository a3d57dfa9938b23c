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
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
)

type reviewFixture struct {
	svc     ReviewService
	reviews *fakeReviewRepo
	titleID uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	users := newFakeUserRepo()
	titles := newFakeTitleRepo()
	reviews := newFakeReviewRepo()

	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Twelve Angry Men",
		Year:         1957,
	}
	if err := titles.Create(context.Background(), title); err != nil {
		t.Fatalf("seed title: %v", err)
	}

	repo := &repository.Repository{User: users, Title: titles, Review: reviews}
	return &reviewFixture{
		svc:     NewReviewService(repo, zap.NewNop()),
		reviews: reviews,
		titleID: title.ID,
	}
}

func caller(role entity.UserRole) *access.Caller {
	return &access.Caller{ID: uuid.New(), Username: "user-" + uuid.NewString()[:8], Role: role}
}

func TestCreateReviewDuplicateByPreCheck(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()
	author := caller(entity.RoleUser)

	req := &request.CreateReviewRequest{Text: "Tense and tight.", Score: 9}
	if _, err := fx.svc.Create(ctx, author, fx.titleID.String(), req); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err := fx.svc.Create(ctx, author, fx.titleID.String(), req)
	if !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
}

func TestCreateReviewDuplicateByConstraint(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()
	author := caller(entity.RoleUser)

	req := &request.CreateReviewRequest{Text: "Tense and tight.", Score: 9}
	if _, err := fx.svc.Create(ctx, author, fx.titleID.String(), req); err != nil {
		t.Fatalf("first review: %v", err)
	}

	// The pre-check misses but the insert still collides, as it would when
	// two requests race past the check together.
	fx.reviews.hideFromPreCheck = true
	_, err := fx.svc.Create(ctx, author, fx.titleID.String(), req)
	if !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview from constraint path, got %v", err)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, caller(entity.RoleUser), fx.titleID.String(),
		&request.CreateReviewRequest{Text: "off the scale", Score: 11})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for score 11, got %v", err)
	}

	_, err = fx.svc.Create(ctx, caller(entity.RoleUser), uuid.NewString(),
		&request.CreateReviewRequest{Text: "no such title", Score: 5})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown title, got %v", err)
	}
}

func TestUpdateReviewObjectAccess(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()
	author := caller(entity.RoleUser)

	created, err := fx.svc.Create(ctx, author, fx.titleID.String(),
		&request.CreateReviewRequest{Text: "fine", Score: 7})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	newText := "changed my mind"
	patch := &request.UpdateReviewRequest{Text: &newText}

	_, err = fx.svc.Update(ctx, caller(entity.RoleUser), fx.titleID.String(), created.ID, patch)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}

	// Moderators edit anyone's review.
	updated, err := fx.svc.Update(ctx, caller(entity.RoleModerator), fx.titleID.String(), created.ID, patch)
	if err != nil {
		t.Fatalf("moderator update: %v", err)
	}
	if updated.Text != newText {
		t.Fatalf("expected text %q, got %q", newText, updated.Text)
	}

	if err := fx.svc.Delete(ctx, caller(entity.RoleUser), fx.titleID.String(), created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete by non-author, got %v", err)
	}
	if err := fx.svc.Delete(ctx, author, fx.titleID.String(), created.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}

func TestReviewScopedToItsTitle(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()
	author := caller(entity.RoleUser)

	created, err := fx.svc.Create(ctx, author, fx.titleID.String(),
		&request.CreateReviewRequest{Text: "fine", Score: 7})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	_, err = fx.svc.Get(ctx, uuid.NewString(), created.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound via wrong title path, got %v", err)
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
)

// In-memory fakes for the repository interfaces. Only the methods the
// services under test exercise are implemented with real behavior.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("create user %s: %w", user.Username, repository.ErrUniqueViolation)
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		if search == "" || strings.Contains(u.Username, search) {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) {
	users, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.String())
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
	// failCreateWithDuplicate simulates losing the constraint race: the
	// pre-check saw nothing but the insert still collides.
	failCreateWithDuplicate bool
	hideFromPreCheck        bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateWithDuplicate {
		return fmt.Errorf("create review: %w", repository.ErrUniqueViolation)
	}
	for _, r := range f.reviews {
		if r.TitleID == review.TitleID && r.AuthorID == review.AuthorID {
			return fmt.Errorf("create review: %w", repository.ErrUniqueViolation)
		}
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reviews[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideFromPreCheck {
		return nil, nil
	}
	for _, r := range f.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	reviews, _ := f.FindByTitleID(ctx, titleID, 0, 0)
	return int64(len(reviews)), nil
}

func (f *fakeReviewRepo) ScoresByTitleID(ctx context.Context, titleID uuid.UUID) ([]int, error) {
	reviews, _ := f.FindByTitleID(ctx, titleID, 0, 0)
	scores := make([]int, len(reviews))
	for i, r := range reviews {
		scores[i] = r.Score
	}
	return scores, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[review.ID]; !ok {
		return fmt.Errorf("review %s not found", review.ID.String())
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reviews, id)
	return nil
}

type fakeTitleRepo struct {
	titles map[uuid.UUID]*entity.Title
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: make(map[uuid.UUID]*entity.Title)}
}

func (f *fakeTitleRepo) Create(ctx context.Context, title *entity.Title) error {
	clone := *title
	f.titles[title.ID] = &clone
	return nil
}

func (f *fakeTitleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	if t, ok := f.titles[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var out []*entity.Title
	for _, t := range f.titles {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeTitleRepo) CountAll(ctx context.Context, filter repository.TitleFilter) (int64, error) {
	return int64(len(f.titles)), nil
}

func (f *fakeTitleRepo) Update(ctx context.Context, title *entity.Title) error {
	clone := *title
	f.titles[title.ID] = &clone
	return nil
}

func (f *fakeTitleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.titles, id)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// lastCode extracts the confirmation code from the most recent email.
func (f *fakeMailer) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	body := f.sent[len(f.sent)-1].body
	idx := strings.LastIndex(body, ": ")
	if idx < 0 {
		return ""
	}
	return body[idx+2:]
}

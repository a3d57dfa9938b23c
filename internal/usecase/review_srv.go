package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/access"
	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/utils"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	// Create enforces the one-review-per-(title, author) rule: a friendly
	// pre-check first, with the storage uniqueness constraint as the
	// authoritative guard under concurrent creates.
	Create(ctx context.Context, caller *access.Caller, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, caller *access.Caller, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, caller *access.Caller, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	out := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, caller *access.Caller, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByTitleAndAuthor(ctx, title.ID, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrDuplicateReview)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: caller.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		// Two concurrent creates for the same pair: the constraint wins
		// and the loser gets the same duplicate error as the pre-check.
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("title %s: %w", titleID, ErrDuplicateReview)
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("title_id", titleID),
			zap.String("author", caller.Username),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID),
		zap.String("author", caller.Username),
		zap.Int("score", req.Score),
	)

	resp := response.ReviewToResponse(review, caller.Username)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, caller *access.Caller, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !access.CanWriteObject(caller, review.AuthorID) {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrForbidden)
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, caller *access.Caller, titleID, reviewID string) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !access.CanWriteObject(caller, review.AuthorID) {
		return fmt.Errorf("review %s: %w", reviewID, ErrForbidden)
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid title id %s", ErrValidation, titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrNotFound)
	}
	return title, nil
}

// findReview resolves a review within its title scope; a review reached
// through the wrong title path is NotFound.
func (s *reviewService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid review id %s", ErrValidation, reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}
	return review, nil
}

func (s *reviewService) authorUsername(ctx context.Context, authorID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}

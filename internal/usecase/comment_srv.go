package usecase

import (
	"context"
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

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	Create(ctx context.Context, caller *access.Caller, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, caller *access.Caller, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, caller *access.Caller, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	out := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		out[i] = response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, caller *access.Caller, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: caller.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("author", caller.Username),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID),
		zap.String("author", caller.Username),
	)

	resp := response.CommentToResponse(comment, caller.Username)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, caller *access.Caller, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !access.CanWriteObject(caller, comment.AuthorID) {
		return nil, fmt.Errorf("comment %s: %w", commentID, ErrForbidden)
	}

	comment.Text = req.Text

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("update comment: %w", err)
	}

	resp := response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, caller *access.Caller, titleID, reviewID, commentID string) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !access.CanWriteObject(caller, comment.AuthorID) {
		return fmt.Errorf("comment %s: %w", commentID, ErrForbidden)
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("delete comment: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *commentService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	titleUUID, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid title id %s", ErrValidation, titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, titleUUID)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrNotFound)
	}

	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid review id %s", ErrValidation, reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}
	return review, nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid comment id %s", ErrValidation, commentID)
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}
	return comment, nil
}

func (s *commentService) authorUsername(ctx context.Context, authorID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}

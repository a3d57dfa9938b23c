package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/utils"
)

type TitleService interface {
	List(ctx context.Context, filter *request.TitleListFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetByID(ctx context.Context, titleID string) (*response.TitleResponse, error)
	Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) List(ctx context.Context, filter *request.TitleListFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	repoFilter := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, repoFilter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := s.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	out := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.buildTitleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		out[i] = *resp
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *titleService) GetByID(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}
	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if err := entity.ValidateYear(req.Year); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		s.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create title: %w", err)
	}

	if len(genreIDs) > 0 {
		if err := s.repo.TitleGenre.Replace(ctx, title.ID, genreIDs); err != nil {
			s.log.Error("Failed to set title genres", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("set title genres: %w", err)
		}
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Update(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := entity.ValidateYear(*req.Year); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		s.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("update title: %w", err)
	}

	if req.Genres != nil {
		genreIDs, err := s.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.repo.TitleGenre.Replace(ctx, title.ID, genreIDs); err != nil {
			s.log.Error("Failed to replace title genres", zap.Error(err), zap.String("title_id", titleID))
			return nil, fmt.Errorf("replace title genres: %w", err)
		}
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Delete(ctx context.Context, titleID string) error {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, title.ID); err != nil {
		s.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", titleID))
		return fmt.Errorf("delete title: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *titleService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
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

func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: unknown category %s", ErrValidation, *slug)
	}
	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}
	if len(genres) != len(slugs) {
		return nil, fmt.Errorf("%w: unknown genre in %v", ErrValidation, slugs)
	}

	ids := make([]uuid.UUID, len(genres))
	for i, genre := range genres {
		ids[i] = genre.ID
	}
	return ids, nil
}

// buildTitleResponse recomputes the rating from the current review scores on
// every call.
func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		var err error
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("load title category: %w", err)
		}
	}

	genres, err := s.repo.TitleGenre.FindGenresByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load title genres: %w", err)
	}

	scores, err := s.repo.Review.ScoresByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load title scores: %w", err)
	}

	resp := response.TitleToResponse(title, category, genres, computeRating(scores))
	return &resp, nil
}

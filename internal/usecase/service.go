package usecase

import (
	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/pkg/mail"
	"media-review/pkg/token"
	"media-review/pkg/utils"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	mailer mail.Mailer,
	tokens *token.Maker,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, mailer, tokens, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Title:    NewTitleService(repo, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}

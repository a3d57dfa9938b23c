package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/mail"
	"media-review/pkg/token"
	"media-review/pkg/utils"
)

type AuthService interface {
	// Signup registers a user (or re-registers a pending one) and emails a
	// confirmation code. The code is stored as a one-way hash; a mail
	// delivery failure fails the signup.
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// ObtainToken exchanges username + confirmation code for a signed
	// access token carrying {username, role}.
	ObtainToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mailer mail.Mailer
	tokens *token.Maker
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mailer mail.Mailer,
	tokens *token.Maker,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mailer: mailer,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if existing != nil {
		// The same identity signing up again gets a fresh code; anyone
		// else holding the username is a conflict.
		if existing.Email != req.Email {
			return nil, fmt.Errorf("username %s: %w", req.Username, ErrConflict)
		}
		return s.reissueCode(ctx, existing)
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if byEmail != nil {
		return nil, fmt.Errorf("email %s: %w", req.Email, ErrConflict)
	}

	code := utils.GenerateConfirmationCode(s.config.Code.Length)
	codeHash, err := utils.HashCode(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleUser,
		CodeHash: codeHash,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// A concurrent signup may win the username or email between the
		// checks above and this insert.
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("signup %s: %w", req.Username, ErrConflict)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendConfirmationCode(ctx, user, code); err != nil {
		// The pending user row is kept; a retried signup re-issues a code.
		return nil, err
	}

	s.log.Info("User signed up",
		zap.String("username", user.Username),
		zap.String("email", user.Email))

	return &response.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

func (s *authService) ObtainToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", req.Username, ErrNotFound)
	}

	if user.CodeHash == "" || !utils.CheckCode(req.ConfirmationCode, user.CodeHash) {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return nil, fmt.Errorf("confirmation code for %s: %w", req.Username, ErrInvalidCredentials)
	}

	signed, err := s.tokens.Issue(user.Username, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("Access token issued", zap.String("username", user.Username))

	return &response.TokenResponse{Token: signed}, nil
}

func (s *authService) reissueCode(ctx context.Context, user *entity.User) (*response.SignupResponse, error) {
	code := utils.GenerateConfirmationCode(s.config.Code.Length)
	codeHash, err := utils.HashCode(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	user.CodeHash = codeHash
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store new confirmation code",
			zap.Error(err), zap.String("username", user.Username))
		return nil, fmt.Errorf("store confirmation code: %w", err)
	}

	if err := s.sendConfirmationCode(ctx, user, code); err != nil {
		return nil, err
	}

	s.log.Info("Confirmation code re-issued", zap.String("username", user.Username))

	return &response.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

func (s *authService) sendConfirmationCode(ctx context.Context, user *entity.User, code string) error {
	body := fmt.Sprintf("Your confirmation code is: %s", code)
	if err := s.mailer.Send(ctx, user.Email, "Email confirmation", body); err != nil {
		s.log.Error("Failed to send confirmation code",
			zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("send confirmation code: %w", err)
	}
	return nil
}

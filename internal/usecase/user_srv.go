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

type UserService interface {
	// Admin operations, keyed by username.
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*response.UserResponse, error)
	List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Update(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, username string) error

	// Self-service profile.
	GetOwnProfile(ctx context.Context, caller *access.Caller) (*response.UserResponse, error)
	UpdateOwnProfile(ctx context.Context, caller *access.Caller, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	role := entity.RoleUser
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Role:        role,
		IsSuperuser: req.IsSuperuser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("user %s: %w", req.Username, ErrConflict)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created by admin", zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.users.FindAll(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.users.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	out := make([]response.UserResponse, len(users))
	for i, user := range users {
		out[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *userService) Update(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}

	applyUserPatch(user, req, true)

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("user %s: %w", username, ErrConflict)
		}
		s.log.Error("Failed to update user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", username, ErrNotFound)
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (s *userService) GetOwnProfile(ctx context.Context, caller *access.Caller) (*response.UserResponse, error) {
	if caller == nil {
		return nil, fmt.Errorf("profile: %w", ErrForbidden)
	}
	return s.GetByUsername(ctx, caller.Username)
}

// UpdateOwnProfile applies a partial update to the caller's own record. The
// role field is applied only for a superuser admin; for everyone else it is
// dropped server-side while the remaining fields are still saved.
func (s *userService) UpdateOwnProfile(ctx context.Context, caller *access.Caller, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if caller == nil {
		return nil, fmt.Errorf("profile: %w", ErrForbidden)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.users.FindByUsername(ctx, caller.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", caller.Username, ErrNotFound)
	}

	allowRole := access.CanChangeRole(caller)
	if req.Role != nil && !allowRole {
		s.log.Warn("Role change attempt blocked",
			zap.String("username", caller.Username),
			zap.String("requested_role", *req.Role))
	}
	applyUserPatch(user, req, allowRole)

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("user %s: %w", caller.Username, ErrConflict)
		}
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("username", caller.Username))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func applyUserPatch(user *entity.User, req *request.UpdateUserRequest, allowRole bool) {
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Role != nil && allowRole {
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = time.Now()
}

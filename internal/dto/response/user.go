package response

import (
	"media-review/internal/data/entity"
)

type UserResponse struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Role        string  `json:"role"`
	IsSuperuser bool    `json:"is_superuser,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Bio:         user.Bio,
		Role:        string(user.Role),
		IsSuperuser: user.IsSuperuser,
	}
}

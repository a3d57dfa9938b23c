package request

type CreateUserRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=150,slug,ne=me"`
	Email       string  `json:"email" validate:"required,email,max=254"`
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Bio         *string `json:"bio,omitempty"`
	Role        string  `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
	IsSuperuser bool    `json:"is_superuser,omitempty"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
}

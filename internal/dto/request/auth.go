package request

// SignupRequest starts the confirmation-code flow. "me" is reserved for the
// self-profile endpoint and rejected as a username.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,slug,ne=me"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// TokenRequest exchanges the emailed confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

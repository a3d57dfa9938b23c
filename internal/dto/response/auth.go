package response

// SignupResponse echoes the registered identity; the confirmation code only
// travels by email.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

package domain

// LoginInput carries the credentials presented to the login operation.
type LoginInput struct {
	Username string
	Password string
}

// SessionOutput is the token pair returned by login and refresh.
type SessionOutput struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64
}

package dto

import (
	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

// SessionResponse is the token pair returned by login and refresh.
type SessionResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// NewSessionResponse converts a session output to its response shape.
func NewSessionResponse(output *authDomain.SessionOutput) SessionResponse {
	return SessionResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		ExpiresIn:    output.ExpiresIn,
	}
}

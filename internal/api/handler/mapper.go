package handler

import (
	"time"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

// toUserResponse projects a domain user onto the wire shape. The password
// hash never leaves the process.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

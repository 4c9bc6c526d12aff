package usecase

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/ports"
)

// LogoutUseCase ends the current session.
type LogoutUseCase struct {
	repo ports.AuthRepository
}

func NewLogoutUseCase(repo ports.AuthRepository) *LogoutUseCase {
	return &LogoutUseCase{repo: repo}
}

func (uc *LogoutUseCase) Execute(ctx context.Context) error {
	return uc.repo.Logout(ctx)
}

package usecase

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/domain"
	"github.com/gestion-esports/account-system/internal/core/ports"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginUseCase authenticates a user through the repository.
type LoginUseCase struct {
	repo ports.AuthRepository
}

func NewLoginUseCase(repo ports.AuthRepository) *LoginUseCase {
	return &LoginUseCase{repo: repo}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*domain.User, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	return uc.repo.Login(ctx, in.Email, in.Password)
}

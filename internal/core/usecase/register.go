package usecase

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/domain"
	"github.com/gestion-esports/account-system/internal/core/ports"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Username string `validate:"required,min=3"`
}

// RegisterUseCase creates an account. The role is always injected as
// RoleUser; privileged accounts are never self-service.
type RegisterUseCase struct {
	repo ports.AuthRepository
}

func NewRegisterUseCase(repo ports.AuthRepository) *RegisterUseCase {
	return &RegisterUseCase{repo: repo}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	return uc.repo.Register(ctx, in.Email, in.Password, in.Username, domain.RoleUser)
}

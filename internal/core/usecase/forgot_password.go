package usecase

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/ports"
)

type ForgotPasswordInput struct {
	Email string `validate:"required,email"`
}

// ForgotPasswordUseCase asks the backend to start a password reset.
type ForgotPasswordUseCase struct {
	repo ports.AuthRepository
}

func NewForgotPasswordUseCase(repo ports.AuthRepository) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{repo: repo}
}

func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, in ForgotPasswordInput) error {
	if err := checkInput(in); err != nil {
		return err
	}
	return uc.repo.ForgotPassword(ctx, in.Email)
}

// Package usecase holds the application-layer auth operations. Each use
// case wraps exactly one repository method; the only logic added here is
// client-side field validation, so obviously bad input never reaches the
// network.
package usecase

import (
	"github.com/go-playground/validator/v10"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

var validate = validator.New()

func checkInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return domain.ErrValidationFailed
	}
	return nil
}

package handlers

import (
	"errors"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the domain tags used in dto binding rules.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	rules := map[string]validator.Func{
		"currency": func(fl validator.FieldLevel) bool {
			return domain.IsValidCurrencyCode(fl.Field().String())
		},
		"category": func(fl validator.FieldLevel) bool {
			return domain.Category(fl.Field().String()).IsValid()
		},
		"periodicity": func(fl validator.FieldLevel) bool {
			return domain.Periodicity(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

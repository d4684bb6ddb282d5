package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingValidators регистрирует собственные правила для тегов binding в gin.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return ValidateSlug(fl.Field().String()) == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("e164", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String()) == nil
	})
}

package dto

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The phone tag accepts international numbers with an optional leading +,
// tolerating spaces and dashes. Registered once against gin's binding
// validator so request structs can use it directly.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", validatePhoneField)
	}
}

func validatePhoneField(fl validator.FieldLevel) bool {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
	return phonePattern.MatchString(normalized)
}

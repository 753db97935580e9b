package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("user_role", validateUserRole)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("cargo_type", validateCargoType)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("currency", validateCurrency)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("phone", validatePhone)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	validRoles := []string{"shipper", "agent", "admin"}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func validateCargoType(fl validator.FieldLevel) bool {
	cargoType := fl.Field().String()
	validTypes := []string{"general", "fragile", "hazardous", "perishable", "oversized", "liquid", "other"}

	for _, validType := range validTypes {
		if cargoType == validType {
			return true
		}
	}
	return false
}

// ISO 4217 alpha code shape; the persistence layer does not enumerate
// currencies.
func validateCurrency(fl validator.FieldLevel) bool {
	currency := fl.Field().String()
	re := regexp.MustCompile(`^[A-Z]{3}$`)
	return re.MatchString(currency)
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	re := regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	return re.MatchString(phone)
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	re := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return re.MatchString(email)
}

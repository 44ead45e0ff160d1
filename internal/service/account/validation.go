package account

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"nalevel/internal/config"
	"nalevel/internal/domain"
	"nalevel/internal/domain/models/account"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// normalizeEmail is applied before every key lookup
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// toValidationError converts ozzo errors into the domain ValidationError
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(errs))
	for name, fieldErr := range errs {
		fields[name] = fieldErr.Error()
	}
	return &domain.ValidationError{Message: "validation failed", Fields: fields}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Length(config.MinPasswordLength, 0)}
}

func validateSignUp(creds *account.Credentials, name string) error {
	return toValidationError(validation.Errors{
		"email":    validation.Validate(creds.Email, validation.Required, validation.Match(emailPattern).Error("must be a valid email address")),
		"password": validation.Validate(creds.Password, passwordRules()...),
		"name":     validation.Validate(strings.TrimSpace(name), validation.Required, validation.Length(1, config.MaxUserNameLength)),
	}.Filter())
}

func validateLogin(creds *account.Credentials) error {
	return toValidationError(validation.ValidateStruct(creds,
		validation.Field(&creds.Email, validation.Required),
		validation.Field(&creds.Password, validation.Required),
	))
}

func validateNewPassword(password string) error {
	return toValidationError(validation.Errors{
		"password": validation.Validate(password, passwordRules()...),
	}.Filter())
}

package e

import "fmt"

var (
	// Базовые классы ошибок, на которые маппится HTTP-статус
	ErrValidation          = fmt.Errorf("validation failed")
	ErrUnauthorized        = fmt.Errorf("please authenticate")
	ErrNotFound            = fmt.Errorf("not found")
	ErrConflict            = fmt.Errorf("conflict")
	ErrStorage             = fmt.Errorf("storage failure")
	ErrInternalServerError = fmt.Errorf("internal server error")

	// 400 Bad Request
	ErrExpectedMultipart    = fmt.Errorf("%w: expected multipart/form-data", ErrValidation)
	ErrMissingFields        = fmt.Errorf("%w: required fields are missing", ErrValidation)
	ErrInvalidPrice         = fmt.Errorf("%w: invalid price", ErrValidation)
	ErrPricePrecision       = fmt.Errorf("%w: price must have at most 2 decimal places", ErrValidation)
	ErrProductNameRequired  = fmt.Errorf("%w: product name is required", ErrValidation)
	ErrCategoryNameRequired = fmt.Errorf("%w: category name is required", ErrValidation)
	ErrWeightRequired       = fmt.Errorf("%w: weight is required", ErrValidation)
	ErrFileTooLarge         = fmt.Errorf("%w: file too large", ErrValidation)
	ErrUnsupportedMediaType = fmt.Errorf("%w: unsupported media type", ErrValidation)

	// 401 Unauthorized
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrTokenRevoked       = fmt.Errorf("%w: token revoked", ErrUnauthorized)

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("%w: product not found", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", ErrNotFound)

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Validation возвращает ошибку валидации с указанием проблемного поля.
func Validation(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, reason)
}

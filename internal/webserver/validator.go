package webserver

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// WebValidator adapts go-playground/validator to echo's Validator.
type WebValidator struct {
	validate *validator.Validate
}

func NewWebValidator() *WebValidator {
	return &WebValidator{validate: validator.New()}
}

func (v *WebValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

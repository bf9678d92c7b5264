package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/types"
)

var validate = newValidator()

// newValidator builds the request validator, reporting fields by their json
// names so messages match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseAndValidate decodes the request body into dest and runs struct
// validation, translating failures into 400-class errors.
func parseAndValidate(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return types.NewValidationError("Invalid request body.")
	}
	if err := validate.Struct(dest); err != nil {
		return types.NewValidationError(validationMessage(err))
	}
	return nil
}

// validationMessage renders the first field failure as a client message.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fieldErr := fieldErrs[0]
		switch fieldErr.Tag() {
		case "required":
			return fieldErr.Field() + " is required."
		case "email":
			return fieldErr.Field() + " must be a valid email address."
		}
		return fieldErr.Field() + " is invalid."
	}
	return "Invalid request body."
}

// parseIDList splits a comma-separated query value into ids, dropping
// blanks.
func parseIDList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

// parseQueryBool reads a boolean query parameter. Only the literals "true"
// and "false" count; anything else is treated as absent.
func parseQueryBool(value string) *bool {
	switch value {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	return nil
}

// parseQueryInt reads an integer query parameter, treating garbage as
// absent.
func parseQueryInt(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

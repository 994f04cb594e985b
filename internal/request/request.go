// Package request holds the body, path and query parsing shared by handlers.
package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bind parses the JSON body into out and validates its `validate` tags.
func Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return Validate(out)
}

// Validate runs the struct validation and maps the first failure to a 400.
func Validate(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, describe(verrs[0]))
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

func describe(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lt", "lte":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParamID parses a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	return parseID(c.Params(name), name)
}

// QueryID parses a required positive integer query parameter.
func QueryID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	return parseID(raw, name)
}

func parseID(raw, name string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(n), nil
}

// Page reads skip/limit query parameters. Limit defaults to DefaultLimit and is
// capped at MaxLimit.
func Page(c *fiber.Ctx) (skip, limit int, err error) {
	skip = c.QueryInt("skip", 0)
	limit = c.QueryInt("limit", DefaultLimit)
	if skip < 0 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "skip must not be negative")
	}
	if limit <= 0 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit, nil
}

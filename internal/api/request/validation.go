package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

func init() {
	validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// ParseID parses a numeric object ID from a URL parameter.
func ParseID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing required ID")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}

// RequireID validates a uuid (token) ID from a URL parameter. Rejecting
// malformed values here keeps them from reaching the uuid column, which
// would fail with a type error rather than zero rows.
func RequireID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing required ID")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid ID %q", s)
	}
	return s, nil
}

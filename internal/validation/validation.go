// Package validation wraps go-playground/validator and libphonenumber so
// that every input error comes back as apperr.ErrValidation.
package validation

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/ttacon/libphonenumber"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

// Struct validates s by its `validate` tags.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		return apperr.Validation("%s", describe(Fields(ves)))
	}
	return apperr.Validation("%s", err.Error())
}

// Fields maps each failing field to the tag it failed.
func Fields(ves validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ves))
	for _, ve := range ves {
		out[ve.Field()] = ve.Tag()
	}
	return out
}

func describe(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, f+": "+tag)
	}
	sort.Strings(parts)
	return "invalid fields: " + strings.Join(parts, ", ")
}

// NormalizePhone parses raw in the given default region and returns it in
// E.164 form.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if region == "" {
		region = "US"
	}
	p, err := libphonenumber.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", apperr.Validation("phone %q: %v", raw, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", apperr.Validation("phone %q is not a valid number", raw)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}

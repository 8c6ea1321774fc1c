package validation

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/go-playground/validator/v10"
)

// Payload is an untyped request body as produced by the body-parser stage.
type Payload map[string]any

// FieldType is the JSON type a rule expects.
type FieldType string

const (
	TypeString FieldType = "string"
)

// Rule is a declarative constraint on one payload field.
type Rule struct {
	Field     string
	Type      FieldType
	MinLength int
	Required  bool
}

// tag renders the constraints validator.Var understands.
func (r Rule) tag() string {
	var tags []string
	if r.Required {
		tags = append(tags, "required")
	}
	if r.MinLength > 0 {
		tags = append(tags, "min="+strconv.Itoa(r.MinLength))
	}
	return strings.Join(tags, ",")
}

// Schema is an ordered set of rules. Keys not covered by a rule are rejected
// unless AllowUnknown is set.
type Schema struct {
	Rules        []Rule
	AllowUnknown bool
}

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves every request.
var validate = validator.New()

// Validate checks p against the schema and returns the validated subset:
// only fields that have a rule and are present.
//
// On failure it returns a 400 *errs.HTTPError whose message is the first
// violation, e.g. `"name" length must be at least 3 characters long`.
func (s Schema) Validate(p Payload) (Payload, error) {
	valid := make(Payload, len(s.Rules))

	for _, rule := range s.Rules {
		value, present := p[rule.Field]
		if !present {
			if rule.Required {
				return nil, fieldError(rule.Field, "is required")
			}
			continue
		}

		if msg := checkType(rule.Type, value); msg != "" {
			return nil, fieldError(rule.Field, msg)
		}

		if tag := rule.tag(); tag != "" {
			if err := validate.Var(value, tag); err != nil {
				return nil, fieldError(rule.Field, describe(err))
			}
		}

		valid[rule.Field] = value
	}

	if !s.AllowUnknown {
		known := make(map[string]bool, len(s.Rules))
		for _, rule := range s.Rules {
			known[rule.Field] = true
		}
		// Sorted so the reported key does not depend on map iteration order.
		for _, key := range slices.Sorted(maps.Keys(p)) {
			if !known[key] {
				return nil, fieldError(key, "is not allowed")
			}
		}
	}

	return valid, nil
}

func checkType(t FieldType, value any) string {
	switch t {
	case TypeString:
		if _, ok := value.(string); !ok {
			return "must be a string"
		}
	}
	return ""
}

// describe converts the first validator failure into a message fragment.
func describe(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "is invalid"
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required":
		return "is not allowed to be empty"
	case "min":
		return fmt.Sprintf("length must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("length must be less than or equal to %s characters long", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}

func fieldError(field, msg string) *errs.HTTPError {
	message := fmt.Sprintf("%q %s", field, msg)
	return errs.NewBadRequestError(message, []errs.FieldError{
		{Field: field, Error: message},
	})
}

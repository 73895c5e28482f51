package wizard

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStep checks only the given step's fields and returns field key to
// message for every failure. Values from other steps are never read.
func ValidateStep(step Step, values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range step.Fields {
		value := strings.TrimSpace(values[f.Key])
		if value == "" {
			if !f.Optional {
				errs[f.Key] = f.message()
			}
			continue
		}
		if tag := f.Rule.tag(); tag != "" {
			if err := validate.Var(value, tag); err != nil {
				errs[f.Key] = f.message()
			}
		}
	}
	return errs
}

func (r Rule) tag() string {
	switch r {
	case RuleEmail:
		return "email"
	case RulePhone:
		return fmt.Sprintf("min=%d", MinPhoneLength)
	}
	return ""
}

func (f Field) message() string {
	if f.Message != "" {
		return f.Message
	}
	return "Required"
}

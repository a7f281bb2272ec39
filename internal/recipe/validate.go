package recipe

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInstance
}

// Validate checks the structural invariants of a set of recipes: every field
// has a name and a label, select fields carry options, keys and field names
// are unique, and only number fields declare a step.
func Validate(recipes []Recipe) error {
	var problems []string
	keys := make(map[string]bool, len(recipes))

	for _, r := range recipes {
		if err := getValidator().Struct(r); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s: %s failed %q", r.Key, fe.Namespace(), fe.Tag()))
			}
		}

		if keys[r.Key] {
			problems = append(problems, fmt.Sprintf("duplicate recipe key %q", r.Key))
		}
		keys[r.Key] = true

		names := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if names[f.Name] {
				problems = append(problems, fmt.Sprintf("%s: duplicate field %q", r.Key, f.Name))
			}
			names[f.Name] = true
			if f.Step != "" && f.Kind != KindNumber {
				problems = append(problems, fmt.Sprintf("%s: field %q has a step but is %s", r.Key, f.Name, f.Kind))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid recipe registry: %s", strings.Join(problems, "; "))
	}
	return nil
}

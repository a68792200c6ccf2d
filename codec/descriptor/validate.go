package descriptor

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateFunction checks that fn is well formed: required fields are set, every parameter type
// parses and parameter names are unique among their siblings. All problems are reported at once.
func ValidateFunction(fn ContractFunction) error {
	var errs []error
	if err := validate.Struct(fn); err != nil {
		errs = append(errs, fmt.Errorf("function %s: %w", fn.Name, err))
	}
	errs = append(errs, validateSiblings(fn.Name+".inputs", fn.Inputs)...)
	errs = append(errs, validateSiblings(fn.Name+".outputs", fn.Outputs)...)

	return errors.Join(errs...)
}

func validateSiblings(path string, descs []TypeDescriptor) []error {
	var errs []error
	seen := make(map[string]struct{}, len(descs))
	for i, d := range descs {
		p := fmt.Sprintf("%s[%d]", path, i)
		if d.Name != "" {
			if _, dup := seen[d.Name]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate name %q", p, d.Name))
			}
			seen[d.Name] = struct{}{}
		}
		// components are checked recursively below; only the outer type string is parsed here
		if _, err := ParseType(TypeDescriptor{Type: d.Type}); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
		if len(d.Components) > 0 {
			if !d.IsTuple() {
				errs = append(errs, fmt.Errorf("%s: components set on non-tuple type %q", p, d.Type))
			}
			errs = append(errs, validateSiblings(p+".components", d.Components)...)
		}
	}

	return errs
}

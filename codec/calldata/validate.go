package calldata

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

// ErrInvalidValue is returned by Validate and ValidateValue for text the encoder would have to
// replace with a fallback.
var ErrInvalidValue = errors.New("invalid value")

// Validate checks the values, keyed by input name, of every input of fn. Inputs without a value
// are checked as empty text. All problems are reported, joined.
func Validate(fn descriptor.ParsedFunction, values map[string]string) error {
	var errs []error
	for i, t := range fn.InputTypes() {
		name := descriptor.FieldName(fn.Inputs[i].Name, i)
		errs = append(errs, validate(t, values[name], name)...)
	}

	return errors.Join(errs...)
}

// ValidateValue checks text as the value of a parameter of type t. Compared to the encoder it is
// strict: addresses are required, booleans must be spelled out, byte values need the 0x prefix
// and fixed arrays and bytesN must have their exact length.
func ValidateValue(t descriptor.Type, text string) error {
	return errors.Join(validate(t, text, "value")...)
}

func validate(t descriptor.Type, text, path string) []error {
	trimmed := strings.TrimSpace(text)

	switch t.Kind {
	case descriptor.KindAddress:
		if trimmed == "" {
			return invalid(path, "address is required")
		}
		if !strings.HasPrefix(trimmed, "0x") || !common.IsHexAddress(trimmed) {
			return invalid(path, "%q is not 0x followed by 40 hex characters", text)
		}
	case descriptor.KindBool:
		if !strings.EqualFold(trimmed, "true") && !strings.EqualFold(trimmed, "false") {
			return invalid(path, "%q is not true or false", text)
		}
	case descriptor.KindString:
	case descriptor.KindUint, descriptor.KindInt:
		if _, err := parseInteger(trimmed, t); err != nil {
			return invalid(path, "%v", err)
		}
	case descriptor.KindBytes:
		if _, err := hexutil.Decode(trimmed); err != nil {
			return invalid(path, "%q is not 0x-prefixed hex: %v", text, err)
		}
	case descriptor.KindFixedBytes:
		b, err := hexutil.Decode(trimmed)
		if err != nil {
			return invalid(path, "%q is not 0x-prefixed hex: %v", text, err)
		}
		if len(b) != t.Size {
			return invalid(path, "%s needs exactly %d bytes, got %d", t, t.Size, len(b))
		}
	case descriptor.KindSlice, descriptor.KindArray:
		items, err := arrayInput(trimmed)
		if err != nil {
			return invalid(path, "%v", err)
		}
		if t.Kind == descriptor.KindArray && len(items) != t.Size {
			return invalid(path, "%s needs exactly %d elements, got %d", t, t.Size, len(items))
		}
		var errs []error
		for i, item := range items {
			errs = append(errs, validate(*t.Elem, item, fmt.Sprintf("%s[%d]", path, i))...)
		}

		return errs
	case descriptor.KindTuple:
		if t.Opaque {
			return invalid(path, "tuple has no component info")
		}

		return validateTuple(t, trimmed, path)
	default:
		return invalid(path, "unsupported type %q", t.Raw)
	}

	return nil
}

func validateTuple(t descriptor.Type, text, path string) []error {
	if strings.HasPrefix(text, "[") {
		items, err := arrayInput(text)
		if err != nil {
			return invalid(path, "malformed struct input: %v", err)
		}
		if len(items) > len(t.Components) {
			return invalid(path, "struct has %d fields, got %d values", len(t.Components), len(items))
		}
	} else if text != "" {
		if !strings.HasPrefix(text, "{") {
			return invalid(path, "expected a JSON object or array")
		}
		known := make(map[string]bool, len(t.ComponentNames))
		for _, name := range t.ComponentNames {
			known[name] = true
		}
		keys, err := objectKeys(text)
		if err != nil {
			return invalid(path, "malformed struct input: %v", err)
		}
		for _, k := range keys {
			if !known[k] {
				return invalid(path, "unknown field %q", k)
			}
		}
	}

	values, err := tupleInput(t, text)
	if err != nil {
		return invalid(path, "%v", err)
	}
	var errs []error
	for i, c := range t.Components {
		errs = append(errs, validate(c, values[i], path+"."+t.ComponentNames[i])...)
	}

	return errs
}

func invalid(path, format string, args ...any) []error {
	return []error{fmt.Errorf("%w: %s: %s", ErrInvalidValue, path, fmt.Sprintf(format, args...))}
}

func objectKeys(text string) ([]string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, err
	}

	return slices.Sorted(maps.Keys(obj)), nil
}

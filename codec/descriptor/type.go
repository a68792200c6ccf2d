package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Type.
type Kind int

const (
	// KindRaw is a type string the codec does not understand. It is carried through so that
	// encoding and decoding can fall back to placeholders instead of failing.
	KindRaw Kind = iota
	KindAddress
	KindBool
	KindString
	KindBytes
	KindFixedBytes
	KindUint
	KindInt
	KindTuple
	KindSlice
	KindArray
)

var kindNames = map[Kind]string{
	KindRaw:        "raw",
	KindAddress:    "address",
	KindBool:       "bool",
	KindString:     "string",
	KindBytes:      "bytes",
	KindFixedBytes: "fixed bytes",
	KindUint:       "uint",
	KindInt:        "int",
	KindTuple:      "tuple",
	KindSlice:      "slice",
	KindArray:      "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is the parsed form of a TypeDescriptor.
//
//   - KindUint / KindInt: Size is the bit width.
//   - KindFixedBytes: Size is N of bytesN.
//   - KindArray: Size is the fixed length K, Elem the element type.
//   - KindSlice: Elem is the element type.
//   - KindTuple: Components and ComponentNames describe the fields. Opaque is set when the
//     descriptor declared a tuple without components.
type Type struct {
	Kind           Kind
	Size           int
	Elem           *Type
	Components     []Type
	ComponentNames []string
	Opaque         bool

	// Raw is the type string the Type was parsed from, e.g. "tuple[]" or "uint256[3]".
	Raw string
}

var (
	ErrEmptyType      = errors.New("empty type")
	ErrUnsupported    = errors.New("unsupported type")
	ErrInvalidArray   = errors.New("invalid array suffix")
	ErrInvalidIntSize = errors.New("invalid integer size")
	ErrInvalidBytes   = errors.New("invalid fixed bytes size")

	arraySuffixRe = regexp.MustCompile(`^(.*)\[(\d*)\]$`)
	intRe         = regexp.MustCompile(`^(u?int)(\d*)$`)
	bytesRe       = regexp.MustCompile(`^bytes(\d+)$`)
)

// ParseType parses the type string of d, including any tuple components, into a Type.
func ParseType(d TypeDescriptor) (Type, error) {
	return parseType(strings.TrimSpace(d.Type), d.Components)
}

// TypeOf is ParseType for callers that must not fail: unparseable descriptors become KindRaw.
func TypeOf(d TypeDescriptor) Type {
	t, err := ParseType(d)
	if err != nil {
		return Type{Kind: KindRaw, Raw: d.Type}
	}

	return t
}

func parseType(raw string, components []TypeDescriptor) (Type, error) {
	if raw == "" {
		return Type{}, ErrEmptyType
	}

	// Array suffixes bind right-to-left: uint256[2][] is a slice of uint256[2].
	if m := arraySuffixRe.FindStringSubmatch(raw); m != nil {
		elem, err := parseType(m[1], components)
		if err != nil {
			return Type{}, err
		}
		if m[2] == "" {
			return Type{Kind: KindSlice, Elem: &elem, Raw: raw}, nil
		}
		size, err := strconv.Atoi(m[2])
		if err != nil || size <= 0 {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidArray, raw)
		}

		return Type{Kind: KindArray, Size: size, Elem: &elem, Raw: raw}, nil
	}
	if strings.Contains(raw, "[") || strings.Contains(raw, "]") {
		return Type{}, fmt.Errorf("%w: %q", ErrInvalidArray, raw)
	}

	switch raw {
	case "address":
		return Type{Kind: KindAddress, Raw: raw}, nil
	case "bool":
		return Type{Kind: KindBool, Raw: raw}, nil
	case "string":
		return Type{Kind: KindString, Raw: raw}, nil
	case "bytes":
		return Type{Kind: KindBytes, Raw: raw}, nil
	case "tuple":
		return parseTuple(components)
	}

	if m := intRe.FindStringSubmatch(raw); m != nil {
		size := 256
		if m[2] != "" {
			size, _ = strconv.Atoi(m[2])
		}
		if size <= 0 || size > 256 || size%8 != 0 {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidIntSize, raw)
		}
		kind := KindInt
		if m[1] == "uint" {
			kind = KindUint
		}

		return Type{Kind: kind, Size: size, Raw: raw}, nil
	}

	if m := bytesRe.FindStringSubmatch(raw); m != nil {
		size, _ := strconv.Atoi(m[1])
		if size <= 0 || size > 32 {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidBytes, raw)
		}

		return Type{Kind: KindFixedBytes, Size: size, Raw: raw}, nil
	}

	return Type{}, fmt.Errorf("%w: %q", ErrUnsupported, raw)
}

func parseTuple(components []TypeDescriptor) (Type, error) {
	t := Type{Kind: KindTuple, Raw: "tuple"}
	if len(components) == 0 {
		t.Opaque = true
		return t, nil
	}
	t.Components = make([]Type, len(components))
	t.ComponentNames = make([]string, len(components))
	for i, c := range components {
		ct, err := ParseType(c)
		if err != nil {
			return Type{}, fmt.Errorf("component %d (%s): %w", i, c.Name, err)
		}
		t.Components[i] = ct
		t.ComponentNames[i] = FieldName(c.Name, i)
	}

	return t, nil
}

// FieldName returns name, or field_<index> when the component is unnamed.
func FieldName(name string, index int) string {
	if name != "" {
		return name
	}

	return "field_" + strconv.Itoa(index)
}

// IsDynamic reports whether values of t are encoded out of line, behind an offset pointer.
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case KindString, KindBytes, KindSlice:
		return true
	case KindArray:
		return t.Elem.IsDynamic()
	case KindTuple:
		for _, c := range t.Components {
			if c.IsDynamic() {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// HasOpaque reports whether t, or anything nested in it, is a tuple without components or a raw
// type. Such values cannot be laid out structurally.
func (t Type) HasOpaque() bool {
	switch t.Kind {
	case KindRaw:
		return true
	case KindSlice, KindArray:
		return t.Elem.HasOpaque()
	case KindTuple:
		if t.Opaque {
			return true
		}
		for _, c := range t.Components {
			if c.HasOpaque() {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// IsElementary reports whether t is a single-word scalar or a dynamic scalar (string, bytes).
func (t Type) IsElementary() bool {
	switch t.Kind {
	case KindTuple, KindSlice, KindArray:
		return false
	default:
		return true
	}
}

// BaseType returns the innermost element type of an array type, or t itself.
func (t Type) BaseType() Type {
	for t.Kind == KindSlice || t.Kind == KindArray {
		t = *t.Elem
	}

	return t
}

// String renders the canonical form of t, with tuples in parenthesized form.
func (t Type) String() string {
	switch t.Kind {
	case KindSlice:
		return t.Elem.String() + "[]"
	case KindArray:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case KindTuple:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.String()
		}

		return "(" + strings.Join(parts, ",") + ")"
	case KindUint:
		return "uint" + strconv.Itoa(t.Size)
	case KindInt:
		return "int" + strconv.Itoa(t.Size)
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	default:
		return t.Raw
	}
}

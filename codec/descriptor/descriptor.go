// Package descriptor models contract function interfaces: the JSON parameter descriptors found in
// interface files and the tagged-union Type the codec dispatches on.
package descriptor

import (
	"strings"
)

// StateMutability is the mutability tag of a contract function.
type StateMutability string

const (
	StateMutabilityPure       StateMutability = "pure"
	StateMutabilityView       StateMutability = "view"
	StateMutabilityNonPayable StateMutability = "nonpayable"
	StateMutabilityPayable    StateMutability = "payable"
)

// EntryTypeFunction is the interface entry type of callable functions.
const EntryTypeFunction = "function"

// TypeDescriptor describes one function parameter or struct field as it appears in a contract
// interface file. Components is only set for tuple types and tuple arrays.
type TypeDescriptor struct {
	Name         string           `json:"name" yaml:"name"`
	Type         string           `json:"type" yaml:"type" validate:"required"`
	InternalType string           `json:"internalType,omitempty" yaml:"internalType,omitempty"`
	Indexed      bool             `json:"indexed,omitempty" yaml:"indexed,omitempty"`
	Components   []TypeDescriptor `json:"components,omitempty" yaml:"components,omitempty" validate:"omitempty,dive"`
}

// IsTuple reports whether the descriptor is a tuple or an array of tuples.
func (d TypeDescriptor) IsTuple() bool {
	return strings.HasPrefix(d.Type, "tuple")
}

// IsArray reports whether the descriptor is a dynamic or fixed array.
func (d TypeDescriptor) IsArray() bool {
	return strings.HasSuffix(d.Type, "]")
}

// ContractFunction is a function entry of a contract interface, before derived fields are computed.
type ContractFunction struct {
	Name            string           `json:"name" yaml:"name" validate:"required"`
	Type            string           `json:"type" yaml:"type" validate:"required,oneof=function constructor receive fallback"`
	StateMutability StateMutability  `json:"stateMutability" yaml:"stateMutability" validate:"omitempty,oneof=pure view nonpayable payable"`
	Inputs          []TypeDescriptor `json:"inputs" yaml:"inputs" validate:"dive"`
	Outputs         []TypeDescriptor `json:"outputs" yaml:"outputs" validate:"dive"`
}

// ParsedFunction is a function interface with its derived canonical signature and mutability flags.
// It is built once with NewParsedFunction and not modified afterwards.
type ParsedFunction struct {
	ContractFunction

	Signature  string `json:"signature" yaml:"signature"`
	IsReadOnly bool   `json:"isReadOnly" yaml:"isReadOnly"`
	IsPayable  bool   `json:"isPayable" yaml:"isPayable"`
}

// NewParsedFunction derives the canonical signature and mutability flags of fn.
func NewParsedFunction(fn ContractFunction) ParsedFunction {
	return ParsedFunction{
		ContractFunction: fn,
		Signature:        CanonicalSignature(fn.Name, fn.Inputs),
		IsReadOnly:       fn.StateMutability == StateMutabilityView || fn.StateMutability == StateMutabilityPure,
		IsPayable:        fn.StateMutability == StateMutabilityPayable,
	}
}

// InputTypes parses every input of the function. Types the codec does not understand come back
// as KindRaw rather than failing.
func (f ParsedFunction) InputTypes() []Type {
	types := make([]Type, len(f.Inputs))
	for i, in := range f.Inputs {
		types[i] = TypeOf(in)
	}

	return types
}

// CanonicalSignature renders name(t1,t2,...) with tuples normalized to parenthesized form and
// parameter names dropped. A tuple without components renders as "()".
func CanonicalSignature(name string, inputs []TypeDescriptor) string {
	return name + "(" + canonicalList(inputs) + ")"
}

// CanonicalType renders the type of d as it appears in a canonical signature.
func CanonicalType(d TypeDescriptor) string {
	if !d.IsTuple() {
		return d.Type
	}
	// "tuple", "tuple[]", "tuple[2][]": keep the array suffix after the parenthesized components
	return "(" + canonicalList(d.Components) + ")" + strings.TrimPrefix(d.Type, "tuple")
}

func canonicalList(descs []TypeDescriptor) string {
	types := make([]string, len(descs))
	for i, d := range descs {
		types[i] = CanonicalType(d)
	}

	return strings.Join(types, ",")
}

// Package calldata encodes text values into contract call-data and decodes call-data back into
// typed, displayable values.
//
// The layout is the standard contract ABI head/tail layout. Both directions are tolerant: the
// encoder never fails on bad input and substitutes deterministic placeholders instead, and the
// decoder never fails on bad data and reports bracketed markers instead.
package calldata

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/deal-console/codec/decimals"
	"github.com/smartcontractkit/deal-console/codec/signature"
)

// Markers shown in place of values that could not be decoded.
const (
	MarkerDecodeError       = "[Decode Error]"
	MarkerArrayDecodeError  = "[Array Decode Error]"
	MarkerStructDecodeError = "[Struct Decode Error]"
	MarkerMissing           = "[Missing]"
	MarkerMissingDisplay    = "[Missing in transaction data]"
	MarkerNoComponentInfo   = "[Struct - No Component Info]"
	MarkerUnsupportedType   = "[Unsupported Type]"
)

// Messages reported in DecodedTransaction.Error.
const (
	MsgTooShort         = "Transaction data too short - missing function selector"
	MsgSelectorMismatch = "Function selector mismatch"
	MsgInvalidHex       = "Invalid hex data"
)

// EncodedParameter is the encoding of one input of an encoded call.
type EncodedParameter struct {
	Name        string         `json:"name" yaml:"name"`
	Type        string         `json:"type" yaml:"type"`
	Value       string         `json:"value" yaml:"value"`
	Encoded     string         `json:"encoded" yaml:"encoded"`
	DecimalInfo *decimals.Info `json:"decimalInfo,omitempty" yaml:"decimalInfo,omitempty"`
}

// EncodedCallData is an encoded function call: the selector followed by the encoded parameters.
type EncodedCallData struct {
	FunctionName string                         `json:"functionName" yaml:"functionName"`
	Signature    string                         `json:"signature" yaml:"signature"`
	Selector     [signature.SelectorLength]byte `json:"-" yaml:"-"`
	Params       []byte                         `json:"-" yaml:"-"`
	Parameters   []EncodedParameter             `json:"parameters" yaml:"parameters"`

	// Warnings lists every fallback taken while encoding.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Data returns the full call payload.
func (c EncodedCallData) Data() []byte {
	data := make([]byte, 0, len(c.Selector)+len(c.Params))
	data = append(data, c.Selector[:]...)

	return append(data, c.Params...)
}

// SelectorHex returns the 0x-prefixed selector.
func (c EncodedCallData) SelectorHex() string { return hexutil.Encode(c.Selector[:]) }

// ParamsHex returns the encoded parameters as hex without prefix.
func (c EncodedCallData) ParamsHex() string { return common.Bytes2Hex(c.Params) }

// DataHex returns the 0x-prefixed call payload.
func (c EncodedCallData) DataHex() string { return hexutil.Encode(c.Data()) }

// DecodedField is one decoded parameter, array element or struct field.
type DecodedField struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	// Value is the canonical value: decimal integers, lowercase hex addresses and bytes, JSON
	// for arrays and structs.
	Value        string         `json:"value" yaml:"value"`
	DisplayValue string         `json:"displayValue" yaml:"displayValue"`
	HexData      string         `json:"hexData" yaml:"hexData"`
	DecimalInfo  *decimals.Info `json:"decimalInfo,omitempty" yaml:"decimalInfo,omitempty"`
	Elements     []DecodedField `json:"elements,omitempty" yaml:"elements,omitempty"`
	Fields       []DecodedField `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Placeholder is set when Value is a marker rather than decoded data.
	Placeholder bool `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// FieldMap returns the struct fields of f by name.
func (f DecodedField) FieldMap() map[string]DecodedField {
	m := make(map[string]DecodedField, len(f.Fields))
	for _, field := range f.Fields {
		m[field.Name] = field
	}

	return m
}

// DecodedTransaction is the result of decoding a full call payload against a function.
type DecodedTransaction struct {
	IsValid           bool           `json:"isValid" yaml:"isValid"`
	FunctionSelector  string         `json:"functionSelector" yaml:"functionSelector"`
	ExpectedSelector  string         `json:"expectedSelector" yaml:"expectedSelector"`
	DecodedParameters []DecodedField `json:"decodedParameters" yaml:"decodedParameters"`
	Error             string         `json:"error,omitempty" yaml:"error,omitempty"`
}

package calldata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

func TestValidateValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     string
		give    string
		wantErr string
	}{
		{name: "address", typ: "address", give: "0x00000000000000000000000000000000000000Ab"},
		{name: "address missing", typ: "address", give: "", wantErr: "value: address is required"},
		{name: "address too short", typ: "address", give: "0x1234", wantErr: "is not 0x followed by 40 hex characters"},
		{name: "address without prefix", typ: "address", give: "0000000000000000000000000000000000000001", wantErr: "is not 0x followed by 40 hex characters"},
		{name: "bool", typ: "bool", give: " TRUE "},
		{name: "bool false", typ: "bool", give: "false"},
		{name: "bool other", typ: "bool", give: "yes", wantErr: `"yes" is not true or false`},
		{name: "string", typ: "string", give: ""},
		{name: "uint8 max", typ: "uint8", give: "255"},
		{name: "uint8 hex", typ: "uint8", give: "0xff"},
		{name: "uint8 empty", typ: "uint8", give: ""},
		{name: "uint8 overflow", typ: "uint8", give: "256", wantErr: "out of range for uint8"},
		{name: "uint negative", typ: "uint256", give: "-1", wantErr: "negative value"},
		{name: "uint garbage", typ: "uint256", give: "1.5", wantErr: "invalid integer"},
		{name: "int8 min", typ: "int8", give: "-128"},
		{name: "int8 overflow", typ: "int8", give: "128", wantErr: "out of range for int8"},
		{name: "bytes empty", typ: "bytes", give: "0x"},
		{name: "bytes", typ: "bytes", give: "0xdeadbeef"},
		{name: "bytes without prefix", typ: "bytes", give: "1234", wantErr: "is not 0x-prefixed hex"},
		{name: "bytes odd", typ: "bytes", give: "0x123", wantErr: "is not 0x-prefixed hex"},
		{name: "bytes4", typ: "bytes4", give: "0xdeadbeef"},
		{name: "bytes4 short", typ: "bytes4", give: "0xdead", wantErr: "bytes4 needs exactly 4 bytes, got 2"},
		{name: "dynamic array", typ: "uint256[]", give: `[1, "2"]`},
		{name: "dynamic array empty", typ: "uint256[]", give: ""},
		{name: "dynamic array bad element", typ: "uint256[]", give: `[1, "x"]`, wantErr: "value[1]: invalid integer"},
		{name: "dynamic array malformed", typ: "uint256[]", give: `{}`, wantErr: "malformed array input"},
		{name: "fixed array", typ: "uint8[2]", give: `[1, 2]`},
		{name: "fixed array short", typ: "uint8[2]", give: `[1]`, wantErr: "uint8[2] needs exactly 2 elements, got 1"},
		{name: "nested array", typ: "address[][]", give: `[["0x0000000000000000000000000000000000000001"], ["0x12"]]`, wantErr: "value[1][0]"},
		{name: "unsupported", typ: "fixed128x18", give: "1.5", wantErr: `unsupported type "fixed128x18"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateValue(descriptor.TypeOf(descriptor.TypeDescriptor{Type: tt.typ}), tt.give)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidValue)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateValue_Tuple(t *testing.T) {
	t.Parallel()

	typ, err := descriptor.ParseType(descriptor.TypeDescriptor{
		Name: "transfer",
		Type: "tuple",
		Components: []descriptor.TypeDescriptor{
			{Name: "to", Type: "address"},
			{Name: "amount", Type: "uint256"},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{name: "object", give: `{"to":"0x0000000000000000000000000000000000000001","amount":"5"}`},
		{name: "array", give: `["0x0000000000000000000000000000000000000001", 5]`},
		{name: "unknown field", give: `{"to":"0x0000000000000000000000000000000000000001","amount":"5","extra":1}`, wantErr: `unknown field "extra"`},
		{name: "too many values", give: `["0x0000000000000000000000000000000000000001", 5, 6]`, wantErr: "struct has 2 fields, got 3 values"},
		{name: "missing field", give: `{"amount":"5"}`, wantErr: "value.to: address is required"},
		{name: "bad field", give: `{"to":"0x0000000000000000000000000000000000000001","amount":"-5"}`, wantErr: "value.amount: negative value"},
		{name: "not json", give: "x", wantErr: "expected a JSON object or array"},
		{name: "malformed", give: `{"to":`, wantErr: "malformed struct input"},
		{name: "empty", give: "", wantErr: "value.to: address is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateValue(typ, tt.give)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidValue)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}

	err = ValidateValue(descriptor.TypeOf(descriptor.TypeDescriptor{Type: "tuple"}), "{}")
	require.ErrorContains(t, err, "tuple has no component info")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	fn := mustFunction(t, functionDef("transfer", `[{"name":"to","type":"address"},{"name":"amount","type":"uint8"}]`))

	require.NoError(t, Validate(fn, map[string]string{"to": "0x0000000000000000000000000000000000000001", "amount": "7"}))

	err := Validate(fn, map[string]string{"amount": "300"})
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorContains(t, err, "to: address is required")
	assert.ErrorContains(t, err, "amount: value \"300\" out of range for uint8")
}

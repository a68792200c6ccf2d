package render

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/deal-console/codec/calldata"
	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

func transferFunction() descriptor.ParsedFunction {
	return descriptor.NewParsedFunction(descriptor.ContractFunction{
		Name: "transfer",
		Type: descriptor.EntryTypeFunction,
		Inputs: []descriptor.TypeDescriptor{
			{Name: "to", Type: "address"},
			{Name: "amount", Type: "uint256"},
		},
	})
}

const transferData = "0xa9059cbb" +
	"0000000000000000000000000000000000000000000000000000000000000001" +
	"00000000000000000000000000000000000000000000000014d1120d7b160000"

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    string
		want    Renderer
		wantErr string
	}{
		{give: "", want: &TextRenderer{}},
		{give: "text", want: &TextRenderer{}},
		{give: "YAML", want: &YAMLRenderer{}},
		{give: "json", want: &JSONRenderer{}},
		{give: "xml", wantErr: `unsupported output format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			got, err := New(tt.give)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestTextRenderer_RenderTransaction(t *testing.T) {
	t.Parallel()

	tx := calldata.NewDecoder().DecodeTransaction(transferFunction(), transferData)

	got, err := NewTextRenderer().RenderTransaction(tx)
	require.NoError(t, err)

	want := `Selector: 0xa9059cbb (expected 0xa9059cbb)
Valid: true

Parameters:
  to (address): 0x0000000000000000000000000000000000000001
  amount (uint256): 1500000000000000000 (raw) | 1.5 (with 18 decimals) | 0x14d1120d7b160000
`
	assert.Equal(t, want, got)
}

func TestTextRenderer_RenderTransaction_Error(t *testing.T) {
	t.Parallel()

	tx := calldata.NewDecoder().DecodeTransaction(transferFunction(), "0x12")

	got, err := NewTextRenderer().RenderTransaction(tx)
	require.NoError(t, err)

	want := `Selector: - (expected 0xa9059cbb)
Valid: false
Error: Transaction data too short - missing function selector
`
	assert.Equal(t, want, got)
}

func TestTextRenderer_RenderFields_Nested(t *testing.T) {
	t.Parallel()

	fields := []calldata.DecodedField{
		{
			Name: "users", Type: "tuple[]", DisplayValue: "Array[1] of tuple",
			Elements: []calldata.DecodedField{
				{
					Name: "users[0]", Type: "tuple", DisplayValue: "Struct with 2 fields",
					Fields: []calldata.DecodedField{
						{Name: "name", Type: "string", DisplayValue: "alice"},
						{Name: "balance", Type: "uint256", DisplayValue: calldata.MarkerDecodeError, Placeholder: true},
					},
				},
			},
		},
		{Name: "count", Type: "uint8", DisplayValue: calldata.MarkerMissingDisplay, Placeholder: true},
	}

	got, err := NewTextRenderer().RenderFields(fields)
	require.NoError(t, err)

	want := `users (tuple[]): Array[1] of tuple
  users[0] (tuple): Struct with 2 fields
    name (string): alice
    balance (uint256): [Decode Error]
count (uint8): [Missing in transaction data]
`
	assert.Equal(t, want, got)
}

func TestTextRenderer_RenderCallData(t *testing.T) {
	t.Parallel()

	call := calldata.NewEncoder().EncodeFunction(transferFunction(), map[string]string{
		"to":     "0xnot-an-address",
		"amount": "1123456789000000000",
	})

	got, err := NewTextRenderer().RenderCallData(call)
	require.NoError(t, err)

	assert.Contains(t, got, "Function: transfer(address,uint256)\nSelector: 0xa9059cbb\nData: 0xa9059cbb")
	assert.Contains(t, got, "  to (address): 0xnot-an-address\n    encoded: "+
		"0000000000000000000000000000000000000000000000000000000000000000")
	assert.Contains(t, got, "    decimals: 1.123456... (with 18 decimals)")
	assert.Contains(t, got, "Warnings:\n  - to: invalid address")
}

func TestYAMLRenderer(t *testing.T) {
	t.Parallel()

	tx := calldata.NewDecoder().DecodeTransaction(transferFunction(), transferData)

	got, err := NewYAMLRenderer().RenderTransaction(tx)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(got), &doc))
	assert.Equal(t, true, doc["isValid"])
	params, ok := doc["decodedParameters"].([]any)
	require.True(t, ok)
	assert.Len(t, params, 2)
	assert.Contains(t, got, "name: amount")
	assert.Contains(t, got, "decimals: 18")

	call := calldata.NewEncoder().EncodeFunction(transferFunction(), map[string]string{"amount": "1"})
	got, err = NewYAMLRenderer().RenderCallData(call)
	require.NoError(t, err)
	assert.Contains(t, got, "functionName: transfer")
	assert.Contains(t, got, "0xa9059cbb")
	assert.NotContains(t, got, "warnings")
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	call := calldata.NewEncoder().EncodeFunction(transferFunction(), map[string]string{
		"to":     "0x0000000000000000000000000000000000000001",
		"amount": "1000",
	})

	got, err := NewJSONRenderer().RenderCallData(call)
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &view))
	assert.Equal(t, "0xa9059cbb", view["selector"])
	assert.Equal(t, call.DataHex(), view["data"])
	assert.Equal(t, "transfer(address,uint256)", view["signature"])
	assert.NotContains(t, view, "warnings")

	fields := calldata.NewDecoder().DecodeParameters(transferFunction(), call.ParamsHex())
	got, err = NewJSONRenderer().RenderFields(fields)
	require.NoError(t, err)

	var back []calldata.DecodedField
	require.NoError(t, json.Unmarshal([]byte(got), &back))
	assert.Equal(t, fields, back)
}

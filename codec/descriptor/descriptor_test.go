package descriptor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalSignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveName   string
		giveInputs []TypeDescriptor
		want       string
	}{
		{
			name:       "elementary types",
			giveName:   "transfer",
			giveInputs: []TypeDescriptor{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint256"}},
			want:       "transfer(address,uint256)",
		},
		{
			name:     "tuple",
			giveName: "updateUser",
			giveInputs: []TypeDescriptor{{Name: "user", Type: "tuple", Components: []TypeDescriptor{
				{Name: "name", Type: "string"}, {Name: "balance", Type: "uint256"}, {Name: "isActive", Type: "bool"},
			}}},
			want: "updateUser((string,uint256,bool))",
		},
		{
			name:     "tuple array with nested tuple",
			giveName: "processData",
			giveInputs: []TypeDescriptor{
				{Name: "values", Type: "uint256[]"},
				{Name: "users", Type: "tuple[2]", Components: []TypeDescriptor{
					{Name: "name", Type: "string"},
					{Name: "meta", Type: "tuple", Components: []TypeDescriptor{{Name: "id", Type: "uint64"}}},
					{Name: "balances", Type: "uint256[]"},
				}},
			},
			want: "processData(uint256[],(string,(uint64),uint256[])[2])",
		},
		{
			name:       "tuple without components",
			giveName:   "broken",
			giveInputs: []TypeDescriptor{{Name: "s", Type: "tuple"}},
			want:       "broken(())",
		},
		{
			name:     "no inputs",
			giveName: "pause",
			want:     "pause()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, CanonicalSignature(tt.giveName, tt.giveInputs))
		})
	}
}

func TestNewParsedFunction(t *testing.T) {
	t.Parallel()

	raw := `{
		"type": "function",
		"name": "deposit",
		"stateMutability": "payable",
		"inputs": [{"name": "trancheId", "type": "uint256", "internalType": "uint256"}],
		"outputs": []
	}`
	var fn ContractFunction
	require.NoError(t, json.Unmarshal([]byte(raw), &fn))

	got := NewParsedFunction(fn)
	assert.Equal(t, "deposit(uint256)", got.Signature)
	assert.True(t, got.IsPayable)
	assert.False(t, got.IsReadOnly)

	view := NewParsedFunction(ContractFunction{Name: "balanceOf", Type: EntryTypeFunction, StateMutability: StateMutabilityView})
	assert.True(t, view.IsReadOnly)
	assert.False(t, view.IsPayable)
}

func TestValidateFunction(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		err := ValidateFunction(ContractFunction{
			Name:            "updateUser",
			Type:            EntryTypeFunction,
			StateMutability: StateMutabilityNonPayable,
			Inputs: []TypeDescriptor{{Name: "user", Type: "tuple", Components: []TypeDescriptor{
				{Name: "name", Type: "string"}, {Name: "balance", Type: "uint256"},
			}}},
		})
		require.NoError(t, err)
	})

	t.Run("reports every problem", func(t *testing.T) {
		t.Parallel()

		err := ValidateFunction(ContractFunction{
			Name:            "bad",
			Type:            EntryTypeFunction,
			StateMutability: "sometimes",
			Inputs: []TypeDescriptor{
				{Name: "a", Type: "uint256"},
				{Name: "a", Type: "uint7"},
				{Name: "s", Type: "tuple", Components: []TypeDescriptor{{Name: "x", Type: "bool"}, {Name: "x", Type: "bool"}}},
				{Name: "c", Type: "address", Components: []TypeDescriptor{{Name: "y", Type: "bool"}}},
			},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "StateMutability")
		assert.ErrorContains(t, err, `bad.inputs[1]: duplicate name "a"`)
		assert.ErrorContains(t, err, "bad.inputs[1]: invalid integer size")
		assert.ErrorContains(t, err, `bad.inputs[2].components[1]: duplicate name "x"`)
		assert.ErrorContains(t, err, "components set on non-tuple type")
	})
}

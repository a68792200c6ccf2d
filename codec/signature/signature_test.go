package signature

import (
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

func TestSelector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
		want string
	}{
		{name: "transfer", give: "transfer(address,uint256)", want: "0xa9059cbb"},
		{name: "approve", give: "approve(address,uint256)", want: "0x095ea7b3"},
		{name: "balanceOf", give: "balanceOf(address)", want: "0x70a08231"},
		{name: "surrounding whitespace is ignored", give: "  transfer(address,uint256)\n", want: "0xa9059cbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Selector(tt.give))
			// deterministic
			assert.Equal(t, Selector(tt.give), Selector(tt.give))
		})
	}
}

func TestFunctionSelector_MatchesGethForTuples(t *testing.T) {
	t.Parallel()

	inputs := []descriptor.TypeDescriptor{
		{Name: "values", Type: "uint256[]"},
		{Name: "users", Type: "tuple[]", Components: []descriptor.TypeDescriptor{
			{Name: "name", Type: "string"},
			{Name: "balances", Type: "uint256[]"},
		}},
	}

	def := `[{"type":"function","name":"processData","stateMutability":"nonpayable","outputs":[],"inputs":[
		{"name":"values","type":"uint256[]"},
		{"name":"users","type":"tuple[]","components":[{"name":"name","type":"string"},{"name":"balances","type":"uint256[]"}]}
	]}]`
	parsed, err := gethabi.JSON(stringsReader(def))
	require.NoError(t, err)

	method := parsed.Methods["processData"]
	assert.Equal(t, method.Sig, BuildSignature("processData", inputs))
	sel := SelectorBytes(method.Sig)
	assert.Equal(t, method.ID, sel[:])
	assert.Equal(t, Selector(method.Sig), FunctionSelector("processData", inputs))
}

func TestOf(t *testing.T) {
	t.Parallel()

	fn := descriptor.NewParsedFunction(descriptor.ContractFunction{
		Name: "updateUser",
		Type: descriptor.EntryTypeFunction,
		Inputs: []descriptor.TypeDescriptor{{Name: "user", Type: "tuple", Components: []descriptor.TypeDescriptor{
			{Name: "name", Type: "string"}, {Name: "balance", Type: "uint256"}, {Name: "isActive", Type: "bool"},
		}}},
	})

	assert.Equal(t, "updateUser((string,uint256,bool))", fn.Signature)
	assert.Equal(t, Selector("updateUser((string,uint256,bool))"), Of(fn))
}

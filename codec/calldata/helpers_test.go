package calldata

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

// functionDef returns the interface JSON of a nonpayable function with the given inputs.
func functionDef(name, inputs string) string {
	return `{"type":"function","name":"` + name + `","stateMutability":"nonpayable","outputs":[],"inputs":` + inputs + `}`
}

// parseFunction parses def both into our descriptor model and into a go-ethereum method.
func parseFunction(t *testing.T, def string) (descriptor.ParsedFunction, abi.Method) {
	t.Helper()

	var fn descriptor.ContractFunction
	require.NoError(t, json.Unmarshal([]byte(def), &fn))

	parsed, err := abi.JSON(strings.NewReader("[" + def + "]"))
	require.NoError(t, err)
	method, ok := parsed.Methods[fn.Name]
	require.True(t, ok)

	return descriptor.NewParsedFunction(fn), method
}

// mustFunction parses def into our descriptor model only, for functions go-ethereum rejects.
func mustFunction(t *testing.T, def string) descriptor.ParsedFunction {
	t.Helper()

	var fn descriptor.ContractFunction
	require.NoError(t, json.Unmarshal([]byte(def), &fn))

	return descriptor.NewParsedFunction(fn)
}

func word(hex string) string {
	return strings.Repeat("0", 64-len(hex)) + hex
}

func typeOf(t *testing.T, typ string) descriptor.Type {
	t.Helper()

	got, err := descriptor.ParseType(descriptor.TypeDescriptor{Type: typ})
	require.NoError(t, err)

	return got
}

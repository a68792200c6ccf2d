// Package signature builds canonical function signatures and the 4-byte selectors derived from them.
package signature

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

// SelectorLength is the number of leading hash bytes identifying a function in call-data.
const SelectorLength = 4

// BuildSignature returns the canonical signature name(t1,t2,...) of a function. Tuples are
// rendered in parenthesized form, recursively; a tuple without components renders as "()".
func BuildSignature(name string, inputs []descriptor.TypeDescriptor) string {
	return descriptor.CanonicalSignature(name, inputs)
}

// SelectorBytes returns the first four bytes of the Keccak-256 hash of sig.
func SelectorBytes(sig string) [SelectorLength]byte {
	var sel [SelectorLength]byte
	copy(sel[:], crypto.Keccak256([]byte(strings.TrimSpace(sig)))[:SelectorLength])

	return sel
}

// Selector returns the 0x-prefixed hex form of SelectorBytes, e.g. "0xa9059cbb" for
// "transfer(address,uint256)".
func Selector(sig string) string {
	sel := SelectorBytes(sig)

	return hexutil.Encode(sel[:])
}

// FunctionSelector computes the selector of a function from its name and inputs.
func FunctionSelector(name string, inputs []descriptor.TypeDescriptor) string {
	return Selector(BuildSignature(name, inputs))
}

// Of returns the selector of a parsed function.
func Of(fn descriptor.ParsedFunction) string {
	return FunctionSelector(fn.Name, fn.Inputs)
}

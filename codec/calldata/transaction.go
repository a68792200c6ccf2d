package calldata

import (
	"strings"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/codec/signature"
)

// selectorHexLen is the number of hex characters of a selector.
const selectorHexLen = 2 * signature.SelectorLength

// DecodeTransaction decodes a full call payload, selector included, against fn. The parameters
// are decoded even when the selector does not match fn, so that data for a similar function can
// still be inspected.
func (d *Decoder) DecodeTransaction(fn descriptor.ParsedFunction, hexData string) DecodedTransaction {
	tx := DecodedTransaction{ExpectedSelector: signature.Of(fn)}

	data := strings.ToLower(strip0x(strings.TrimSpace(hexData)))
	if len(data) < selectorHexLen {
		tx.Error = MsgTooShort
		return tx
	}
	if !isHex(data) {
		tx.Error = MsgInvalidHex
		d.opts.lggr.Warnw("Transaction data is not hex", "function", fn.Name)

		return tx
	}

	tx.FunctionSelector = "0x" + data[:selectorHexLen]
	tx.IsValid = tx.FunctionSelector == tx.ExpectedSelector
	if !tx.IsValid {
		tx.Error = MsgSelectorMismatch
		d.opts.lggr.Debugw("Selector mismatch", "function", fn.Name,
			"observed", tx.FunctionSelector, "expected", tx.ExpectedSelector)
	}
	tx.DecodedParameters = d.DecodeParameters(fn, data[selectorHexLen:])

	return tx
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}

	return true
}

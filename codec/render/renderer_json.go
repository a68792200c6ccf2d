package render

import (
	"encoding/json"
	"fmt"

	"github.com/smartcontractkit/deal-console/codec/calldata"
)

var _ Renderer = (*JSONRenderer)(nil)

// JSONRenderer renders indented JSON documents.
type JSONRenderer struct {
	indent string
}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{indent: "  "}
}

func (r *JSONRenderer) RenderTransaction(tx calldata.DecodedTransaction) (string, error) {
	return r.marshal("transaction", tx)
}

func (r *JSONRenderer) RenderCallData(c calldata.EncodedCallData) (string, error) {
	return r.marshal("call data", newCallDataView(c))
}

func (r *JSONRenderer) RenderFields(fields []calldata.DecodedField) (string, error) {
	return r.marshal("fields", fields)
}

func (r *JSONRenderer) marshal(what string, v any) (string, error) {
	out, err := json.MarshalIndent(v, "", r.indent)
	if err != nil {
		return "", fmt.Errorf("failed to render %s as json: %w", what, err)
	}

	return string(out) + "\n", nil
}

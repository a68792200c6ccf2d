package render

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/smartcontractkit/deal-console/codec/calldata"
)

var _ Renderer = (*YAMLRenderer)(nil)

// YAMLRenderer renders YAML documents.
type YAMLRenderer struct {
	opts []yaml.EncodeOption
}

func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{opts: []yaml.EncodeOption{
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	}}
}

func (r *YAMLRenderer) RenderTransaction(tx calldata.DecodedTransaction) (string, error) {
	return r.marshal("transaction", tx)
}

func (r *YAMLRenderer) RenderCallData(c calldata.EncodedCallData) (string, error) {
	return r.marshal("call data", newCallDataView(c))
}

func (r *YAMLRenderer) RenderFields(fields []calldata.DecodedField) (string, error) {
	return r.marshal("fields", fields)
}

func (r *YAMLRenderer) marshal(what string, v any) (string, error) {
	out, err := yaml.MarshalWithOptions(v, r.opts...)
	if err != nil {
		return "", fmt.Errorf("failed to render %s as yaml: %w", what, err)
	}

	return string(out), nil
}

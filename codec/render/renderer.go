// Package render turns decoded transactions and encoded calls into text, YAML or JSON.
package render

import (
	"fmt"
	"strings"

	"github.com/smartcontractkit/deal-console/codec/calldata"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Renderer turns codec results into a concrete output format.
type Renderer interface {
	RenderTransaction(tx calldata.DecodedTransaction) (string, error)
	RenderCallData(c calldata.EncodedCallData) (string, error)
	RenderFields(fields []calldata.DecodedField) (string, error)
}

// New returns the Renderer for format.
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewTextRenderer(), nil
	case FormatYAML:
		return NewYAMLRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// callDataView is EncodedCallData with its binary parts in hex.
type callDataView struct {
	FunctionName string                      `json:"functionName" yaml:"functionName"`
	Signature    string                      `json:"signature" yaml:"signature"`
	Selector     string                      `json:"selector" yaml:"selector"`
	Data         string                      `json:"data" yaml:"data"`
	Parameters   []calldata.EncodedParameter `json:"parameters" yaml:"parameters"`
	Warnings     []string                    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newCallDataView(c calldata.EncodedCallData) callDataView {
	return callDataView{
		FunctionName: c.FunctionName,
		Signature:    c.Signature,
		Selector:     c.SelectorHex(),
		Data:         c.DataHex(),
		Parameters:   c.Parameters,
		Warnings:     c.Warnings,
	}
}

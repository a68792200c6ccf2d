package calldata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

// TemplateStyle selects the values a template is filled with.
type TemplateStyle int

const (
	// TemplatePlaceholder fills values with a hint of their type, e.g. "<address>".
	TemplatePlaceholder TemplateStyle = iota
	// TemplateEmpty fills values with zero values that encode as zero.
	TemplateEmpty
	// TemplateExample fills values with sample values. For supported types they pass ValidateValue.
	TemplateExample
)

// exampleAddress is the address used by example templates.
var exampleAddress = common.HexToAddress("0x742d35Cc6851C6c8A03DF4C40c68a7e18A2dF0A8")

// ParseTemplateStyle parses "placeholder", "empty" or "example".
func ParseTemplateStyle(s string) (TemplateStyle, error) {
	switch strings.ToLower(s) {
	case "placeholder":
		return TemplatePlaceholder, nil
	case "empty":
		return TemplateEmpty, nil
	case "example":
		return TemplateExample, nil
	default:
		return 0, fmt.Errorf("unknown template style %q: must be one of placeholder, empty, example", s)
	}
}

// Template returns the skeleton of a value of type t: a JSON-compatible value where structs are
// objects with their fields in declaration order and arrays are lists. Dynamic arrays have no
// elements in the empty style, one in the placeholder style and two in the example style; fixed
// arrays always have their declared length.
func Template(t descriptor.Type, style TemplateStyle) any {
	switch t.Kind {
	case descriptor.KindTuple:
		obj := object{}
		for i, c := range t.Components {
			obj.keys = append(obj.keys, t.ComponentNames[i])
			obj.values = append(obj.values, Template(c, style))
		}

		return obj
	case descriptor.KindSlice:
		n := 1
		switch style {
		case TemplateEmpty:
			n = 0
		case TemplateExample:
			n = 2
		}

		return repeat(Template(*t.Elem, style), n)
	case descriptor.KindArray:
		return repeat(Template(*t.Elem, style), t.Size)
	case descriptor.KindBool:
		if style == TemplatePlaceholder {
			return "<true|false>"
		}

		return style == TemplateExample
	default:
		return scalarTemplate(t, style)
	}
}

// TemplateText returns the template of t as the text the encoder takes: indented JSON for
// arrays and structs, the bare value otherwise.
func TemplateText(t descriptor.Type, style TemplateStyle) (string, error) {
	v := Template(t, style)
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return fmt.Sprint(v), nil
	}

	b, err := marshal(v, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal template: %w", err)
	}

	return string(b), nil
}

// FunctionTemplate returns the templates of the inputs of fn as an object keyed by input name,
// in the shape of an encode args file.
func FunctionTemplate(fn descriptor.ParsedFunction, style TemplateStyle) ([]byte, error) {
	obj := object{}
	for i, t := range fn.InputTypes() {
		obj.keys = append(obj.keys, descriptor.FieldName(fn.Inputs[i].Name, i))
		obj.values = append(obj.values, Template(t, style))
	}

	b, err := marshal(obj, "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}

	return b, nil
}

func scalarTemplate(t descriptor.Type, style TemplateStyle) string {
	switch t.Kind {
	case descriptor.KindAddress:
		switch style {
		case TemplateEmpty:
			return common.Address{}.Hex()
		case TemplateExample:
			return exampleAddress.Hex()
		}

		return "<address>"
	case descriptor.KindString:
		switch style {
		case TemplateEmpty:
			return ""
		case TemplateExample:
			return "example"
		}

		return "<string>"
	case descriptor.KindUint, descriptor.KindInt:
		switch style {
		case TemplateEmpty:
			return "0"
		case TemplateExample:
			// 100 fits every 8 bit integer, signed or not
			if t.Size < 16 {
				return "100"
			}

			return "1000"
		}

		return "<number>"
	case descriptor.KindBytes:
		switch style {
		case TemplateEmpty:
			return "0x"
		case TemplateExample:
			return "0x1234567890abcdef"
		}

		return "<0x...>"
	case descriptor.KindFixedBytes:
		switch style {
		case TemplateEmpty:
			return "0x" + strings.Repeat("00", t.Size)
		case TemplateExample:
			return "0x" + strings.Repeat("12", t.Size)
		}

		return fmt.Sprintf("<0x, %d bytes>", t.Size)
	default:
		switch style {
		case TemplateEmpty:
			return ""
		case TemplateExample:
			return "example"
		}

		return "<value>"
	}
}

func repeat(v any, n int) []any {
	l := make([]any, n)
	for i := range l {
		l[i] = v
	}

	return l
}

// object is a JSON object that keeps its keys in order.
type object struct {
	keys   []string
	values []any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(k, "")
		if err != nil {
			return nil, err
		}
		value, err := marshal(o.values[i], "")
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// marshal encodes v as JSON, indented when indent is set, leaving the angle brackets of
// placeholders unescaped.
func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

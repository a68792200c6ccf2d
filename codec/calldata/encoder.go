package calldata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/codec/signature"
)

// Encoder lays out text values as call-data. It is safe for concurrent use.
type Encoder struct {
	opts options
}

func NewEncoder(opts ...Option) *Encoder {
	o := newOptions(opts)
	o.lggr = o.lggr.Named("encoder")

	return &Encoder{opts: o}
}

// EncodeParameters encodes values, keyed by input name, for the inputs of fn and returns the
// result as hex without prefix.
func (e *Encoder) EncodeParameters(fn descriptor.ParsedFunction, values map[string]string) string {
	return e.EncodeFunction(fn, values).ParamsHex()
}

// EncodeFunction encodes a full call of fn. Unnamed inputs are keyed field_<index>. Inputs
// without a value encode as empty text.
func (e *Encoder) EncodeFunction(fn descriptor.ParsedFunction, values map[string]string) EncodedCallData {
	enc := &encoding{opts: e.opts, fn: fn.Name}

	types := fn.InputTypes()
	parts := make([]part, len(types))
	params := make([]EncodedParameter, len(types))
	for i, t := range types {
		name := descriptor.FieldName(fn.Inputs[i].Name, i)
		text := values[name]
		parts[i] = enc.value(t, text, name)

		params[i] = EncodedParameter{
			Name:    name,
			Type:    fn.Inputs[i].Type,
			Value:   text,
			Encoded: common.Bytes2Hex(parts[i].data),
		}
		if t.Kind == descriptor.KindUint {
			if n, err := parseInteger(text, t); err == nil {
				params[i].DecimalInfo = e.opts.decimalInfo(t.String(), fn.Name, name, n.String())
			}
		}
	}

	return EncodedCallData{
		FunctionName: fn.Name,
		Signature:    fn.Signature,
		Selector:     signature.SelectorBytes(fn.Signature),
		Params:       assemble(parts),
		Parameters:   params,
		Warnings:     enc.warnings,
	}
}

// part is the encoding of one value: head bytes stored in place for static values, or tail
// bytes referenced by an offset for dynamic ones.
type part struct {
	dynamic bool
	data    []byte
}

func (p part) headLen() int {
	if p.dynamic {
		return wordSize
	}

	return len(p.data)
}

// assemble lays parts out as a tuple: heads in order, then the tails of dynamic parts, with each
// dynamic head holding the offset of its tail from the start of the tuple.
func assemble(parts []part) []byte {
	headLen := 0
	for _, p := range parts {
		headLen += p.headLen()
	}

	var head, tail []byte
	for _, p := range parts {
		if !p.dynamic {
			head = append(head, p.data...)
			continue
		}
		head = append(head, uintWord(uint64(headLen+len(tail)))...)
		tail = append(tail, p.data...)
	}

	return append(head, tail...)
}

// encoding carries the state of one EncodeFunction call.
type encoding struct {
	opts     options
	fn       string
	warnings []string
}

func (e *encoding) warn(path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.warnings = append(e.warnings, path+": "+msg)
	e.opts.lggr.Warnw("Encoding fallback", "function", e.fn, "param", path, "reason", msg)
}

func (e *encoding) value(t descriptor.Type, text, path string) part {
	switch t.Kind {
	case descriptor.KindRaw:
		return e.placeholder(t, text, path, fmt.Sprintf("unsupported type %q", t.Raw))
	case descriptor.KindTuple:
		return e.tuple(t, text, path)
	case descriptor.KindSlice:
		items, err := arrayInput(text)
		if err != nil {
			return e.placeholder(t, text, path, err.Error())
		}
		enc := uintWord(uint64(len(items)))
		enc = append(enc, e.sequence(*t.Elem, items, path)...)

		return part{dynamic: true, data: enc}
	case descriptor.KindArray:
		items, err := arrayInput(text)
		if err != nil {
			return e.placeholder(t, text, path, err.Error())
		}
		if len(items) != t.Size {
			fitted := make([]string, t.Size)
			copy(fitted, items)
			items = fitted
		}

		return part{dynamic: t.IsDynamic(), data: e.sequence(*t.Elem, items, path)}
	case descriptor.KindString:
		return part{dynamic: true, data: dynamicBytes([]byte(text))}
	case descriptor.KindBytes:
		b, err := hexInput(text)
		if err != nil {
			return e.placeholder(t, text, path, "invalid hex for bytes")
		}

		return part{dynamic: true, data: dynamicBytes(b)}
	default:
		return part{data: e.word(t, text, path)}
	}
}

func (e *encoding) sequence(elem descriptor.Type, items []string, path string) []byte {
	parts := make([]part, len(items))
	for i, item := range items {
		parts[i] = e.value(elem, item, fmt.Sprintf("%s[%d]", path, i))
	}

	return assemble(parts)
}

func (e *encoding) tuple(t descriptor.Type, text, path string) part {
	if t.Opaque {
		return e.placeholder(t, text, path, "tuple has no component info")
	}
	values, err := tupleInput(t, text)
	if err != nil {
		return e.placeholder(t, text, path, err.Error())
	}
	parts := make([]part, len(t.Components))
	for i, c := range t.Components {
		parts[i] = e.value(c, values[i], path+"."+t.ComponentNames[i])
	}

	return part{dynamic: t.IsDynamic(), data: assemble(parts)}
}

// placeholder stands in for a value that cannot be laid out: the Keccak-256 hash of its text,
// stored in place and zero-padded to the head size of t so that later values stay aligned.
func (e *encoding) placeholder(t descriptor.Type, text, path, reason string) part {
	e.warn(path, "%s, using hash placeholder", reason)
	data := make([]byte, headSize(t))
	copy(data, crypto.Keccak256([]byte(text)))

	return part{data: data}
}

// word encodes an elementary static value. Values that do not parse encode as zero.
func (e *encoding) word(t descriptor.Type, text, path string) []byte {
	text = strings.TrimSpace(text)
	switch t.Kind {
	case descriptor.KindAddress:
		if text == "" {
			return make([]byte, wordSize)
		}
		if !common.IsHexAddress(text) {
			e.warn(path, "invalid address %q, using zero", text)
			return make([]byte, wordSize)
		}

		return common.LeftPadBytes(common.HexToAddress(text).Bytes(), wordSize)
	case descriptor.KindBool:
		if strings.EqualFold(text, "true") {
			return uintWord(1)
		}

		return uintWord(0)
	case descriptor.KindUint, descriptor.KindInt:
		n, err := parseInteger(text, t)
		if err != nil {
			e.warn(path, "%v, using zero", err)
			return make([]byte, wordSize)
		}

		return math.U256Bytes(n)
	case descriptor.KindFixedBytes:
		b, err := hexInput(text)
		if err != nil {
			e.warn(path, "invalid hex for %s, using zero", t)
			return make([]byte, wordSize)
		}
		if len(b) > t.Size {
			b = b[:t.Size]
		}

		return common.RightPadBytes(b, wordSize)
	default:
		e.warn(path, "unexpected type %s, using zero", t)
		return make([]byte, wordSize)
	}
}

// parseInteger parses decimal or 0x-prefixed hex text, with a leading minus sign for signed
// types, and checks that the value fits t. Empty text is zero.
func parseInteger(text string, t descriptor.Type) (*big.Int, error) {
	s := strings.TrimSpace(text)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
		if t.Kind != descriptor.KindInt {
			return nil, fmt.Errorf("negative value %q for %s", text, t)
		}
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return nil, fmt.Errorf("invalid integer %q", text)
	}
	n, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", text)
	}
	if neg {
		n.Neg(n)
	}

	if t.Kind == descriptor.KindUint {
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %q out of range for %s", text, t)
		}

		return n, nil
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, fmt.Errorf("value %q out of range for %s", text, t)
	}

	return n, nil
}

func uintWord(v uint64) []byte {
	return math.U256Bytes(new(big.Int).SetUint64(v))
}

// dynamicBytes is the tail of a string or bytes value: its length followed by the content padded
// to a whole number of words.
func dynamicBytes(b []byte) []byte {
	enc := uintWord(uint64(len(b)))
	padded := (len(b) + wordSize - 1) / wordSize * wordSize

	return append(enc, common.RightPadBytes(b, padded)...)
}

// hexInput decodes hex text with or without the 0x prefix. Empty text is no bytes.
func hexInput(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []byte{}, nil
	}
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}

	return hexutil.Decode(text)
}

// arrayInput parses a JSON array into the text of each element. Empty text is an empty array.
func arrayInput(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("malformed array input: %w", err)
	}
	items := make([]string, len(raw))
	for i, r := range raw {
		items[i] = elementText(r)
	}

	return items, nil
}

// tupleInput parses a JSON object, read by component name, or a JSON array, read by position,
// into the text of each component of t. Missing components are empty text.
func tupleInput(t descriptor.Type, text string) ([]string, error) {
	values := make([]string, len(t.Components))
	text = strings.TrimSpace(text)
	if text == "" {
		return values, nil
	}

	if strings.HasPrefix(text, "[") {
		items, err := arrayInput(text)
		if err != nil {
			return nil, fmt.Errorf("malformed struct input: %w", err)
		}
		copy(values, items)

		return values, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("malformed struct input: %w", err)
	}
	for i, name := range t.ComponentNames {
		if r, ok := obj[name]; ok {
			values[i] = elementText(r)
		}
	}

	return values, nil
}

// elementText turns a JSON value into the text the encoder expects for it: strings are unquoted,
// null is empty and everything else keeps its compact JSON form.
func elementText(r json.RawMessage) string {
	trimmed := bytes.TrimSpace(r)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}

	return buf.String()
}

package calldata

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
)

// shortBytesLen is the number of hex characters of a bytes value shown before it is shortened.
const shortBytesLen = 20

// Decoder recovers typed values from call-data. It never fails: data it cannot make sense of is
// reported with bracketed markers. It is safe for concurrent use.
type Decoder struct {
	opts options
}

func NewDecoder(opts ...Option) *Decoder {
	o := newOptions(opts)
	o.lggr = o.lggr.Named("decoder")

	return &Decoder{opts: o}
}

// DecodeParameters decodes the encoded inputs of fn from hexBlob, with or without 0x prefix.
// Inputs whose head lies beyond the end of the data are reported as missing.
func (d *Decoder) DecodeParameters(fn descriptor.ParsedFunction, hexBlob string) []DecodedField {
	types := fn.InputTypes()
	fields := make([]DecodedField, len(types))

	data, err := decodeHex(hexBlob)
	if err != nil {
		d.opts.lggr.Warnw("Invalid parameter data", "function", fn.Name, "err", err)
		for i, t := range types {
			fields[i] = marker(descriptor.FieldName(fn.Inputs[i].Name, i), t, MarkerDecodeError)
		}

		return fields
	}

	dec := decoding{opts: d.opts, fn: fn.Name, spent: new(int)}
	offset := 0
	for i, t := range types {
		name := descriptor.FieldName(fn.Inputs[i].Name, i)
		size := headSize(t)
		if offset+size > len(data) {
			fields[i] = missing(name, t)
		} else {
			fields[i] = dec.field(name, t, data, offset)
		}
		offset += size
	}

	return fields
}

// decoding carries the state of one decode call.
type decoding struct {
	opts options
	fn   string
	// spent is the size of the values produced so far.
	spent *int
}

// charge records n more bytes of output and reports whether the call is still within its limit.
func (d decoding) charge(n int) bool {
	*d.spent += n

	return *d.spent <= d.opts.maxDecodedSize
}

// field decodes the value of type t whose head starts at offset within base, the encoding of
// the enclosing tuple or sequence. Panics are contained to the field.
func (d decoding) field(name string, t descriptor.Type, base []byte, offset int) (f DecodedField) {
	defer func() {
		if r := recover(); r != nil {
			d.opts.lggr.Warnw("Recovered while decoding", "function", d.fn, "param", name, "panic", r)
			f = marker(name, t, MarkerDecodeError)
		}
	}()

	return d.value(name, t, base, offset)
}

func (d decoding) value(name string, t descriptor.Type, base []byte, offset int) DecodedField {
	head := base[offset : offset+headSize(t)]

	switch {
	case t.Kind == descriptor.KindRaw:
		f := marker(name, t, MarkerUnsupportedType)
		f.HexData = common.Bytes2Hex(head)

		return f
	case t.Kind == descriptor.KindTuple && t.Opaque:
		f := marker(name, t, MarkerNoComponentInfo)
		f.HexData = common.Bytes2Hex(head)

		return f
	case !t.IsDynamic():
		return d.static(name, t, head)
	}

	ptr, ok := readSize(head, len(base))
	if !ok {
		return d.fail(name, t, "offset out of range", head)
	}
	content := base[ptr:]

	var f DecodedField
	switch t.Kind {
	case descriptor.KindString, descriptor.KindBytes:
		n, ok := readSize(content, len(content)-wordSize)
		if !ok {
			return d.fail(name, t, "length out of range", head)
		}
		if !d.charge(scalarSize(t, n)) {
			return d.fail(name, t, "decoded size limit exceeded", head)
		}
		f = dynamicScalar(name, t, content[wordSize:wordSize+n])
	case descriptor.KindSlice:
		n, ok := readSize(content, len(content))
		if !ok {
			return d.fail(name, t, "length out of range", head)
		}
		elems, ok := d.sequence(name, *t.Elem, n, content[wordSize:])
		if !ok {
			return d.fail(name, t, "elements out of range", head)
		}
		f = arrayField(name, t, elems)
	case descriptor.KindArray:
		elems, ok := d.sequence(name, *t.Elem, t.Size, content)
		if !ok {
			return d.fail(name, t, "elements out of range", head)
		}
		f = arrayField(name, t, elems)
	case descriptor.KindTuple:
		if tupleHeadSize(t) > len(content) {
			return d.fail(name, t, "fields out of range", head)
		}
		f = structField(name, t, d.tuple(t, content))
	default:
		return d.fail(name, t, "unexpected dynamic type", head)
	}
	if f.Fields != nil || f.Elements != nil {
		if !d.charge(len(f.Value)) {
			return d.fail(name, t, "decoded size limit exceeded", head)
		}
	}
	f.HexData = common.Bytes2Hex(head)

	return f
}

// scalarSize is the size of the value of a string or bytes of length n once decoded.
func scalarSize(t descriptor.Type, n int) int {
	if t.Kind == descriptor.KindString {
		return n
	}

	return len("0x") + 2*n
}

// static decodes a value stored entirely in its head.
func (d decoding) static(name string, t descriptor.Type, head []byte) DecodedField {
	var f DecodedField
	switch t.Kind {
	case descriptor.KindArray:
		elems, _ := d.sequence(name, *t.Elem, t.Size, head)
		f = arrayField(name, t, elems)
	case descriptor.KindTuple:
		f = structField(name, t, d.tuple(t, head))
	default:
		f = d.elementary(name, t, head)
	}
	f.HexData = common.Bytes2Hex(head)

	return f
}

// sequence decodes n consecutive values of type elem laid out as a tuple in base.
func (d decoding) sequence(name string, elem descriptor.Type, n int, base []byte) ([]DecodedField, bool) {
	stride := headSize(elem)
	if n < 0 || n > len(base)/stride {
		return nil, false
	}
	elems := make([]DecodedField, n)
	for i := range n {
		elems[i] = d.field(fmt.Sprintf("%s[%d]", name, i), elem, base, i*stride)
	}

	return elems, true
}

func (d decoding) tuple(t descriptor.Type, base []byte) []DecodedField {
	fields := make([]DecodedField, len(t.Components))
	offset := 0
	for i, c := range t.Components {
		fields[i] = d.field(t.ComponentNames[i], c, base, offset)
		offset += headSize(c)
	}

	return fields
}

func (d decoding) elementary(name string, t descriptor.Type, word []byte) DecodedField {
	f := DecodedField{Name: name, Type: t.Raw}
	switch t.Kind {
	case descriptor.KindAddress:
		f.Value = strings.ToLower(common.BytesToAddress(word).Hex())
		f.DisplayValue = f.Value
	case descriptor.KindBool:
		f.Value = fmt.Sprint(!new(uint256.Int).SetBytes(word).IsZero())
		f.DisplayValue = f.Value
	case descriptor.KindUint:
		n := new(uint256.Int).SetBytes(word)
		f.Value = n.Dec()
		f.DisplayValue = fmt.Sprintf("%s (%s)", f.Value, n.Hex())
		if info := d.opts.decimalInfo(t.String(), d.fn, name, f.Value); info != nil {
			f.DecimalInfo = info
			f.DisplayValue = fmt.Sprintf("%s (raw) | %s (with %d decimals) | %s", f.Value, info.Formatted, info.Decimals, n.Hex())
		}
	case descriptor.KindInt:
		n := new(uint256.Int).SetBytes(word)
		f.Value = signedDec(n)
		f.DisplayValue = fmt.Sprintf("%s (%s)", f.Value, n.Hex())
	case descriptor.KindFixedBytes:
		f.Value = hexutil.Encode(word[:t.Size])
		f.DisplayValue = shortHex(f.Value)
	default:
		return marker(name, t, MarkerUnsupportedType)
	}

	return f
}

// signedDec returns the decimal form of n read as a two's complement signed integer.
func signedDec(n *uint256.Int) string {
	if n.Sign() >= 0 {
		return n.Dec()
	}

	return "-" + new(uint256.Int).Neg(n).Dec()
}

func (d decoding) fail(name string, t descriptor.Type, reason string, head []byte) DecodedField {
	d.opts.lggr.Warnw("Could not decode value", "function", d.fn, "param", name, "type", t.Raw, "reason", reason)
	f := marker(name, t, failureMarker(t))
	f.HexData = common.Bytes2Hex(head)

	return f
}

func dynamicScalar(name string, t descriptor.Type, content []byte) DecodedField {
	f := DecodedField{Name: name, Type: t.Raw}
	if t.Kind == descriptor.KindString {
		f.Value = string(content)
		f.DisplayValue = f.Value

		return f
	}
	f.Value = hexutil.Encode(content)
	f.DisplayValue = shortHex(f.Value)

	return f
}

func arrayField(name string, t descriptor.Type, elems []DecodedField) DecodedField {
	if elems == nil {
		elems = []DecodedField{}
	}

	return DecodedField{
		Name:         name,
		Type:         t.Raw,
		Value:        jsonValue(elems, nil),
		DisplayValue: fmt.Sprintf("Array[%d] of %s", len(elems), t.Elem.Raw),
		Elements:     elems,
	}
}

func structField(name string, t descriptor.Type, fields []DecodedField) DecodedField {
	return DecodedField{
		Name:         name,
		Type:         t.Raw,
		Value:        jsonValue(nil, fields),
		DisplayValue: fmt.Sprintf("Struct with %d fields", len(fields)),
		Fields:       fields,
	}
}

// jsonValue renders nested values as JSON: arrays as lists, structs as objects.
func jsonValue(elems, fields []DecodedField) string {
	var v any
	if fields != nil {
		v = nestedValues(DecodedField{Fields: fields})
	} else {
		v = nestedValues(DecodedField{Elements: elems})
	}
	b, err := json.Marshal(v)
	if err != nil {
		return MarkerDecodeError
	}

	return string(b)
}

func nestedValues(f DecodedField) any {
	switch {
	case f.Fields != nil:
		m := make(map[string]any, len(f.Fields))
		for _, field := range f.Fields {
			m[field.Name] = nestedValues(field)
		}

		return m
	case f.Elements != nil:
		l := make([]any, len(f.Elements))
		for i, e := range f.Elements {
			l[i] = nestedValues(e)
		}

		return l
	default:
		return f.Value
	}
}

func marker(name string, t descriptor.Type, text string) DecodedField {
	return DecodedField{Name: name, Type: t.Raw, Value: text, DisplayValue: text, Placeholder: true}
}

func missing(name string, t descriptor.Type) DecodedField {
	return DecodedField{Name: name, Type: t.Raw, Value: MarkerMissing, DisplayValue: MarkerMissingDisplay, Placeholder: true}
}

func failureMarker(t descriptor.Type) string {
	switch t.Kind {
	case descriptor.KindSlice, descriptor.KindArray:
		return MarkerArrayDecodeError
	case descriptor.KindTuple:
		return MarkerStructDecodeError
	default:
		return MarkerDecodeError
	}
}

// readSize reads the first word of b as an offset or length no greater than limit.
func readSize(b []byte, limit int) (int, bool) {
	if len(b) < wordSize || limit < 0 {
		return 0, false
	}
	n := new(uint256.Int).SetBytes(b[:wordSize])
	if !n.IsUint64() || n.Uint64() > uint64(limit) {
		return 0, false
	}

	return int(n.Uint64()), true
}

func shortHex(s string) string {
	if len(s) <= len("0x")+shortBytesLen {
		return s
	}

	return s[:len("0x")+shortBytesLen] + "..."
}

// decodeHex decodes hex text with or without the 0x prefix. A trailing half byte is ignored.
func decodeHex(s string) ([]byte, error) {
	s = strip0x(strings.TrimSpace(s))
	if len(s)%2 == 1 {
		s = s[:len(s)-1]
	}

	return hexutil.Decode("0x" + s)
}

func strip0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}

	return s
}

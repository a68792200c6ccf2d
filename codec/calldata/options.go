package calldata

import (
	"github.com/smartcontractkit/deal-console/codec/decimals"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

// DefaultMaxDecodedSize bounds the text a Decoder produces for one call.
const DefaultMaxDecodedSize = 4 << 20

type options struct {
	lggr              logger.Logger
	policy            decimals.Policy
	dealDecimals      *int
	waterfallDecimals *int
	maxDecodedSize    int
}

// Option configures an Encoder or a Decoder.
type Option func(*options)

// WithLogger sets the logger fallbacks are reported to.
func WithLogger(lggr logger.Logger) Option {
	return func(o *options) { o.lggr = lggr }
}

// WithDecimalsPolicy sets the policy resolving the scale of amount parameters.
func WithDecimalsPolicy(p decimals.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithAssetDecimals sets the asset decimals of the selected deal and of its waterfall
// configuration. Either may be nil.
func WithAssetDecimals(deal, waterfall *int) Option {
	return func(o *options) {
		o.dealDecimals = deal
		o.waterfallDecimals = waterfall
	}
}

// WithMaxDecodedSize limits the total size, in bytes, of the values a Decoder produces for one
// call. Dynamic values and arrays past the limit are reported as decode errors. Elements of a
// dynamic array may all point at the same tail, so without a limit a small input can expand into
// a very large output.
func WithMaxDecodedSize(n int) Option {
	return func(o *options) { o.maxDecodedSize = n }
}

func newOptions(opts []Option) options {
	o := options{
		lggr:           logger.Nop(),
		policy:         decimals.DefaultPolicy(),
		maxDecodedSize: DefaultMaxDecodedSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// decimalInfo returns the decimal view of the unsigned integer raw, or nil when the parameter is
// not an amount.
func (o options) decimalInfo(typ, fnName, param, raw string) *decimals.Info {
	if !decimals.ShouldShowDecimals(typ, param) {
		return nil
	}
	d := o.policy.Resolve(decimals.Query{
		ParamName:         param,
		FunctionName:      fnName,
		DealDecimals:      o.dealDecimals,
		WaterfallDecimals: o.waterfallDecimals,
	})
	info := decimals.FormatUint(raw, d)

	return &info
}

package decimals

import "strings"

// DefaultDecimals is the scale assumed for amounts when nothing more specific is known.
const DefaultDecimals = 18

var (
	amountKeywords   = []string{"amount", "balance", "value", "supply", "borrow", "repay", "withdraw"}
	wholeKeywords    = []string{"id", "index", "count", "length", "tranche"}
	functionKeywords = []string{"supply", "borrow", "repay", "withdraw", "transfer", "approve"}
)

// Query is the context a Policy resolves the scale of one parameter from.
type Query struct {
	ParamName    string
	FunctionName string

	// DealDecimals and WaterfallDecimals are the asset_decimals values of the selected deal and
	// its waterfall configuration, when known.
	DealDecimals      *int
	WaterfallDecimals *int
}

// Strategy resolves the scale of a parameter, or reports that it cannot.
type Strategy interface {
	Resolve(q Query) (int, bool)
}

// StrategyFunc adapts a function to a Strategy.
type StrategyFunc func(q Query) (int, bool)

func (f StrategyFunc) Resolve(q Query) (int, bool) { return f(q) }

// Explicit uses the deal's asset decimals, then the waterfall configuration's.
type Explicit struct{}

func (Explicit) Resolve(q Query) (int, bool) {
	if q.DealDecimals != nil {
		return *q.DealDecimals, true
	}
	if q.WaterfallDecimals != nil {
		return *q.WaterfallDecimals, true
	}

	return 0, false
}

// ParamNameHeuristic guesses from the parameter name: amounts get 18 decimals, identifiers and
// counters none. Amount keywords win when both match.
type ParamNameHeuristic struct{}

func (ParamNameHeuristic) Resolve(q Query) (int, bool) {
	name := strings.ToLower(q.ParamName)
	if name == "" {
		return 0, false
	}
	if containsAny(name, amountKeywords) {
		return DefaultDecimals, true
	}
	if containsAny(name, wholeKeywords) {
		return 0, true
	}

	return 0, false
}

// FunctionNameHeuristic assumes 18 decimals inside functions that move tokens.
type FunctionNameHeuristic struct{}

func (FunctionNameHeuristic) Resolve(q Query) (int, bool) {
	if containsAny(strings.ToLower(q.FunctionName), functionKeywords) {
		return DefaultDecimals, true
	}

	return 0, false
}

// Fixed always resolves to its value.
type Fixed int

func (f Fixed) Resolve(Query) (int, bool) { return int(f), true }

// Policy tries its strategies in order and uses the first answer.
type Policy struct {
	strategies []Strategy
	fallback   int
}

// NewPolicy returns a policy over strategies. When none of them resolves, DefaultDecimals is used.
func NewPolicy(strategies ...Strategy) Policy {
	return Policy{strategies: strategies, fallback: DefaultDecimals}
}

// DefaultPolicy is explicit context first, then the parameter name, then the function name,
// then 18.
func DefaultPolicy() Policy {
	return NewPolicy(Explicit{}, ParamNameHeuristic{}, FunctionNameHeuristic{}, Fixed(DefaultDecimals))
}

// Resolve returns the scale for q.
func (p Policy) Resolve(q Query) int {
	for _, s := range p.strategies {
		if d, ok := s.Resolve(q); ok {
			return d
		}
	}

	return p.fallback
}

// Strategies returns the strategies of p in evaluation order.
func (p Policy) Strategies() []Strategy {
	return append([]Strategy(nil), p.strategies...)
}

// ShouldShowDecimals reports whether a parameter of type typ named param is an amount worth
// showing in decimal form: unsigned integers, except identifiers and counters.
func ShouldShowDecimals(typ, param string) bool {
	if !strings.HasPrefix(typ, "uint") {
		return false
	}

	return !containsAny(strings.ToLower(param), wholeKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}

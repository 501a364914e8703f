package smartbiz

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of the books unless configured otherwise.
const DefaultCurrency = "VND"

// Money is an amount in a currency, used for display.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns the Money value of amount in currency.
func M(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{value: amount, cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// money.New is the only way to get a never nil currency
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency's grouping and symbol, rounded
// to the currency's minor unit.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString is like String with an explicit "+" on positive amounts and
// "-" for zero.
func (m Money) SignedString() string {
	switch {
	case m.value.IsZero():
		return "-"
	case m.value.IsPositive():
		return "+" + m.String()
	default:
		return m.String()
	}
}

func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) Currency() string        { return m.cur }
func (m Money) IsZero() bool            { return m.value.IsZero() }

// Format is a shortcut for M(amount, currency).String().
func Format(amount decimal.Decimal, currency string) string { return M(amount, currency).String() }

// maxDecimal returns the larger of a and b.
func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// dec converts an integer quantity.
func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/date"
	"github.com/shopspring/decimal"
)

// parseAmount parses a decimal amount. Thousands separators "," and "_" are
// ignored.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// parseOptionalAmount parses s, or returns an invalid NullDecimal when s is
// empty.
func parseOptionalAmount(s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// parseDate parses a day, see date.Parse, and returns its start in the local
// time zone. An empty string is the zero time.
func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.Start(time.Local), nil
}

// cartLine is a line typed on the command line: <ref>[:<qty>][@<price>].
type cartLine struct {
	Ref      string
	Quantity int64
	Price    decimal.NullDecimal
}

func parseCartLine(s string) (cartLine, error) {
	line := cartLine{Quantity: 1}
	rest := strings.TrimSpace(s)
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		price, err := parseAmount(rest[i+1:])
		if err != nil {
			return line, fmt.Errorf("line %q: %w", s, err)
		}
		line.Price = decimal.NewNullDecimal(price)
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		q, err := strconv.ParseInt(rest[i+1:], 10, 64)
		if err != nil || q <= 0 {
			return line, fmt.Errorf("line %q: invalid quantity %q", s, rest[i+1:])
		}
		line.Quantity = q
		rest = rest[:i]
	}
	if rest == "" {
		return line, fmt.Errorf("line %q: missing product", s)
	}
	line.Ref = rest
	return line, nil
}

// resolveProduct finds a product by id, then by SKU, then by a name matching
// ref unambiguously.
func resolveProduct(l *smartbiz.Ledger, ref string) (smartbiz.Product, error) {
	if p, ok := l.Product(ref); ok {
		return p, nil
	}
	if p, ok := l.ProductBySKU(ref); ok {
		return p, nil
	}
	found := l.SearchProducts(ref)
	switch len(found) {
	case 0:
		return smartbiz.Product{}, fmt.Errorf("no product matches %q", ref)
	case 1:
		return found[0], nil
	}
	names := make([]string, 0, len(found))
	for _, p := range found {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.SKU))
	}
	return smartbiz.Product{}, fmt.Errorf("%q matches several products: %s", ref, strings.Join(names, ", "))
}

// resolveContact finds a contact of type ct, any type when empty, by id then
// by a name or phone matching ref unambiguously.
func resolveContact(l *smartbiz.Ledger, ct smartbiz.ContactType, ref string) (smartbiz.Contact, error) {
	if c, ok := l.Contact(ref); ok && (ct == "" || c.Type == ct) {
		return c, nil
	}
	found := l.SearchContacts(ct, ref)
	switch len(found) {
	case 0:
		return smartbiz.Contact{}, fmt.Errorf("no contact matches %q", ref)
	case 1:
		return found[0], nil
	}
	names := make([]string, 0, len(found))
	for _, c := range found {
		names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.ID))
	}
	return smartbiz.Contact{}, fmt.Errorf("%q matches several contacts: %s", ref, strings.Join(names, ", "))
}

// orderLines parses and resolves the cart lines of an order.
func orderLines(l *smartbiz.Ledger, args []string) ([]smartbiz.Line, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("the cart is empty")
	}
	lines := make([]smartbiz.Line, 0, len(args))
	for _, arg := range args {
		cl, err := parseCartLine(arg)
		if err != nil {
			return nil, err
		}
		p, err := resolveProduct(l, cl.Ref)
		if err != nil {
			return nil, err
		}
		lines = append(lines, smartbiz.Line{ProductID: p.ID, Quantity: cl.Quantity, Price: cl.Price})
	}
	return lines, nil
}

// rangeFlags select the days of a report.
type rangeFlags struct {
	period string
	date   string
	from   string
	to     string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.period, "p", "", "Period containing the date: day, week, month, quarter or year")
	f.StringVar(&r.date, "d", "", "Date of the period, defaults to today")
	f.StringVar(&r.from, "from", "", "First day, an ISO date or an offset such as -7d")
	f.StringVar(&r.to, "to", "", "Last day")
}

// Range returns the selected days. Without any flag, all time is selected.
func (r *rangeFlags) Range() (date.Range, error) {
	var rg date.Range
	if r.from != "" || r.to != "" {
		if r.period != "" {
			return rg, fmt.Errorf("-p cannot be used with -from or -to")
		}
		var err error
		if r.from != "" {
			if rg.From, err = date.Parse(r.from); err != nil {
				return rg, err
			}
		}
		if r.to != "" {
			if rg.To, err = date.Parse(r.to); err != nil {
				return rg, err
			}
		}
		if !rg.From.IsZero() && !rg.To.IsZero() && rg.To.Before(rg.From) {
			return rg, fmt.Errorf("range ends on %s before it starts on %s", rg.To, rg.From)
		}
		return rg, nil
	}
	if r.period == "" && r.date == "" {
		return rg, nil
	}
	on := date.Today()
	if r.date != "" {
		var err error
		if on, err = date.Parse(r.date); err != nil {
			return rg, err
		}
	}
	period := date.Daily
	if r.period != "" {
		var err error
		if period, err = date.ParsePeriod(r.period); err != nil {
			return rg, err
		}
	}
	return date.NewRange(on, period), nil
}

// filters returns the transaction filters of the range and of term.
func (r *rangeFlags) filters(term string) ([]smartbiz.Filter, date.Range, error) {
	rg, err := r.Range()
	if err != nil {
		return nil, rg, err
	}
	var fs []smartbiz.Filter
	if !rg.IsZero() {
		fs = append(fs, smartbiz.During(rg))
	}
	if term != "" {
		fs = append(fs, smartbiz.Matching(term))
	}
	return fs, rg, nil
}

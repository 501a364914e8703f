package cmd

import (
	"strings"
	"testing"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/date"
	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1500000", "1500000", false},
		{"1,500,000", "1500000", false},
		{"1_500_000", "1500000", false},
		{" 12.50 ", "12.5", false},
		{"-3", "-3", false},
		{"", "", true},
		{"abc", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseAmount(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseAmount(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && got.String() != tc.want {
				t.Errorf("parseAmount(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseCartLine(t *testing.T) {
	testCases := []struct {
		input   string
		want    cartLine
		wantErr bool
	}{
		{"IP15PM", cartLine{Ref: "IP15PM", Quantity: 1}, false},
		{"IP15PM:3", cartLine{Ref: "IP15PM", Quantity: 3}, false},
		{"IP15PM@30,000,000", cartLine{Ref: "IP15PM", Quantity: 1, Price: decimal.NewNullDecimal(decimal.NewFromInt(30_000_000))}, false},
		{"p1:2@100", cartLine{Ref: "p1", Quantity: 2, Price: decimal.NewNullDecimal(decimal.NewFromInt(100))}, false},
		{"IP15PM:0", cartLine{}, true},
		{"IP15PM:x", cartLine{}, true},
		{"IP15PM@", cartLine{}, true},
		{":2", cartLine{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseCartLine(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseCartLine(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if got.Ref != tc.want.Ref || got.Quantity != tc.want.Quantity || got.Price.Valid != tc.want.Price.Valid || !got.Price.Decimal.Equal(tc.want.Price.Decimal) {
				t.Errorf("parseCartLine(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestResolveProduct(t *testing.T) {
	l := smartbiz.FromSnapshot(smartbiz.Seed())
	testCases := []struct {
		ref  string
		want string // product id, empty for an error
	}{
		{"p3", "p3"},
		{"mba-m3", "p3"},
		{"macbook", "p3"},
		{"Samsung", "p2"},
		{"P", ""}, // several products
		{"nokia", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			p, err := resolveProduct(l, tc.ref)
			if tc.want == "" {
				if err == nil {
					t.Errorf("resolveProduct(%q) = %s, want an error", tc.ref, p.ID)
				}
				return
			}
			if err != nil || p.ID != tc.want {
				t.Errorf("resolveProduct(%q) = %s, %v, want %s", tc.ref, p.ID, err, tc.want)
			}
		})
	}
}

func TestResolveContact(t *testing.T) {
	l := smartbiz.FromSnapshot(smartbiz.Seed())
	testCases := []struct {
		name string
		ct   smartbiz.ContactType
		ref  string
		want string
	}{
		{"id", "", "s1", "s1"},
		{"id of another type", smartbiz.Customer, "s1", ""},
		{"name without accents", smartbiz.Customer, "tran thi", "c2"},
		{"phone", "", "0281234567", "s1"},
		{"ambiguous", smartbiz.Supplier, "o", ""},
		{"unknown", "", "nobody", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := resolveContact(l, tc.ct, tc.ref)
			if tc.want == "" {
				if err == nil {
					t.Errorf("resolveContact(%q) = %s, want an error", tc.ref, c.ID)
				}
				return
			}
			if err != nil || c.ID != tc.want {
				t.Errorf("resolveContact(%q) = %s, %v, want %s", tc.ref, c.ID, err, tc.want)
			}
		})
	}
}

func TestOrderLines(t *testing.T) {
	l := smartbiz.FromSnapshot(smartbiz.Seed())
	lines, err := orderLines(l, []string{"IP15PM:2", "airpods@6,000,000"})
	if err != nil {
		t.Fatalf("orderLines() error = %v", err)
	}
	if len(lines) != 2 || lines[0].ProductID != "p1" || lines[0].Quantity != 2 || lines[1].ProductID != "p4" || !lines[1].Price.Valid {
		t.Errorf("orderLines() = %+v", lines)
	}
	if _, err := orderLines(l, nil); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("orderLines() of an empty cart error = %v", err)
	}
}

func TestRangeFlags(t *testing.T) {
	testCases := []struct {
		name    string
		flags   rangeFlags
		want    date.Range
		wantErr bool
	}{
		{"all time", rangeFlags{}, date.Range{}, false},
		{"day", rangeFlags{date: "2025-07-14"}, date.Range{From: date.New(2025, 7, 14), To: date.New(2025, 7, 14)}, false},
		{"month", rangeFlags{period: "month", date: "2025-07-14"}, date.Range{From: date.New(2025, 7, 1), To: date.New(2025, 7, 31)}, false},
		{"from", rangeFlags{from: "2025-07-01"}, date.Range{From: date.New(2025, 7, 1)}, false},
		{"from to", rangeFlags{from: "2025-07-01", to: "2025-07-10"}, date.Range{From: date.New(2025, 7, 1), To: date.New(2025, 7, 10)}, false},
		{"reversed", rangeFlags{from: "2025-07-10", to: "2025-07-01"}, date.Range{}, true},
		{"period and from", rangeFlags{period: "week", from: "2025-07-01"}, date.Range{}, true},
		{"unknown period", rangeFlags{period: "decade"}, date.Range{}, true},
		{"invalid date", rangeFlags{date: "soon"}, date.Range{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.flags.Range()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Range() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Range() = %v, want %v", got, tc.want)
			}
		})
	}
}

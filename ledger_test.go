package smartbiz

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedger_Record_Stock(t *testing.T) {
	testCases := []struct {
		name      string
		txs       []Transaction
		product   string
		wantStock int64
	}{
		{
			name:      "sale decreases stock",
			txs:       []Transaction{sale("x1", "", "32000000", item("p1", 3, "32000000"))},
			product:   "p1",
			wantStock: 12,
		},
		{
			name:      "purchase increases stock",
			txs:       []Transaction{purchase("x1", "s1", "0", item("p3", 7, "24000000"))},
			product:   "p3",
			wantStock: 10,
		},
		{
			name: "sales are clamped at zero",
			txs: []Transaction{
				sale("x1", "", "0", item("p3", 2, "1")),
				sale("x2", "", "0", item("p3", 2, "1")),
				sale("x3", "", "0", item("p3", 5, "1")),
			},
			product:   "p3",
			wantStock: 0,
		},
		{
			name: "purchase after clamping starts from zero",
			txs: []Transaction{
				sale("x1", "", "0", item("p3", 10, "1")),
				purchase("x2", "s1", "0", item("p3", 4, "1")),
			},
			product:   "p3",
			wantStock: 4,
		},
		{
			name: "every item counts",
			txs: []Transaction{
				sale("x1", "", "0", item("p4", 2, "1"), item("p1", 1, "1"), item("p4", 3, "1")),
			},
			product:   "p4",
			wantStock: 20,
		},
		{
			name:      "income leaves stock unchanged",
			txs:       []Transaction{{ID: "x1", Type: Income, Items: []TransactionItem{item("p1", 5, "1")}}},
			product:   "p1",
			wantStock: 15,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := seeded()
			for _, tx := range tc.txs {
				l.Record(context.Background(), tx)
			}
			if got := stockOf(t, l, tc.product); got != tc.wantStock {
				t.Errorf("stock of %s = %d, want %d", tc.product, got, tc.wantStock)
			}
		})
	}
}

func TestLedger_Record_Balance(t *testing.T) {
	testCases := []struct {
		name        string
		tx          Transaction
		contact     string
		wantBalance string
	}{
		{"sale on credit", sale("x1", "c2", "1000", item("p4", 1, "6200000")), "c2", "6199000"},
		{"sale fully paid", sale("x1", "c1", "6200000", item("p4", 1, "6200000")), "c1", "1500000"},
		{"purchase on credit", purchase("x1", "s2", "0", item("p4", 2, "5000000")), "s2", "10000000"},
		{"debt collection", Transaction{ID: "x1", Type: DebtCollection, ContactID: "c1", Subtotal: d("500000"), Total: d("500000"), PaidAmount: d("500000"), DebtAmount: d("-500000")}, "c1", "1000000"},
		{"overpaying a debt goes negative", Transaction{ID: "x1", Type: DebtPayment, ContactID: "s1", Subtotal: d("50000000"), Total: d("50000000"), PaidAmount: d("50000000"), DebtAmount: d("-50000000")}, "s1", "-5000000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := seeded()
			before := balanceOf(t, l, tc.contact)
			r := l.Record(context.Background(), tc.tx)
			if !r.OK() {
				t.Fatalf("Record() warnings = %v", r.Warnings)
			}
			got := balanceOf(t, l, tc.contact)
			assertDecimal(t, "balance", got, d(tc.wantBalance))
			assertDecimal(t, "balance delta", got.Sub(before), tc.tx.DebtAmount)
		})
	}
}

func TestLedger_Record_Prepends(t *testing.T) {
	l := seeded()
	l.Record(context.Background(), sale("x1", "", "1", item("p4", 1, "1")))
	l.Record(context.Background(), sale("x2", "", "1", item("p4", 1, "1")))

	var ids []string
	for _, tx := range l.Transactions() {
		ids = append(ids, tx.ID)
	}
	want := []string{"x2", "x1", "t1", "t2"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Transactions() ids = %v, want %v", ids, want)
	}
}

func TestLedger_Record_Warnings(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want []Warning
	}{
		{
			name: "unknown product",
			tx:   sale("x1", "", "1", item("ghost", 1, "1"), item("p1", 1, "1")),
			want: []Warning{{Kind: MissingProduct, TxID: "x1", Ref: "ghost"}},
		},
		{
			name: "unknown contact",
			tx:   sale("x1", "nobody", "0", item("p1", 1, "100")),
			want: []Warning{{Kind: MissingContact, TxID: "x1", Ref: "nobody"}},
		},
		{
			name: "clamped stock",
			tx:   sale("x1", "", "5", item("p3", 5, "1")),
			want: []Warning{{Kind: ClampedStock, TxID: "x1", Ref: "p3", Quantity: 2}},
		},
		{
			name: "duplicate id",
			tx:   Transaction{ID: "t1", Type: Income, PaidAmount: d("1"), Total: d("1"), Subtotal: d("1")},
			want: []Warning{{Kind: DuplicateID, TxID: "t1", Ref: "t1"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := seeded()
			n := len(l.Transactions())
			r := l.Record(context.Background(), tc.tx)
			if !reflect.DeepEqual(r.Warnings, tc.want) {
				t.Errorf("Record() warnings = %v, want %v", r.Warnings, tc.want)
			}
			if got := len(l.Transactions()); got != n+1 {
				t.Errorf("journal has %d transactions, want %d: recording never fails", got, n+1)
			}
		})
	}

	t.Run("resolved references still apply", func(t *testing.T) {
		l := seeded()
		l.Record(context.Background(), sale("x1", "", "1", item("ghost", 1, "1"), item("p1", 2, "1")))
		if got := stockOf(t, l, "p1"); got != 13 {
			t.Errorf("stock of p1 = %d, want 13", got)
		}
	})
}

func TestLedger_Record_Notifies(t *testing.T) {
	l := seeded()
	n := &recordingNotifier{}
	l.SetNotifier(n)

	ctx := context.Background()
	l.Record(ctx, sale("x1", "", "1", item("p1", 1, "1")))
	l.Record(ctx, Transaction{ID: "x2", Type: Expense, Subtotal: d("5"), Total: d("5"), PaidAmount: d("5")})
	l.Record(ctx, purchase("x3", "s1", "0", item("p1", 1, "1")))
	l.Wait()

	got := n.ids()
	if len(got) != 2 {
		t.Fatalf("notified %v, want sales and purchases only", got)
	}
	if !(got[0] == "x1" && got[1] == "x3" || got[0] == "x3" && got[1] == "x1") {
		t.Errorf("notified %v, want x1 and x3", got)
	}
}

func TestLedger_Record_NotifierFailure(t *testing.T) {
	l := seeded()
	l.SetNotifier(&recordingNotifier{err: errNotifier})
	r := l.Record(context.Background(), sale("x1", "c2", "0", item("p1", 1, "32000000")))
	l.Wait()
	if !r.OK() {
		t.Errorf("Record() warnings = %v, want none", r.Warnings)
	}
	if _, ok := l.Transaction("x1"); !ok {
		t.Error("transaction was rolled back after a notification failure")
	}
	assertDecimal(t, "balance of c2", balanceOf(t, l, "c2"), d("32000000"))
}

func TestLedger_Validate(t *testing.T) {
	l := seeded()
	testCases := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{"seed sale", Seed().Transactions[0], nil},
		{"seed purchase", Seed().Transactions[1], nil},
		{"unknown product", sale("x1", "", "1", item("ghost", 1, "1")), ErrNotFound},
		{"unknown contact", sale("x1", "nobody", "1", item("p1", 1, "1")), ErrNotFound},
		{"no items", Transaction{ID: "x1", Type: Sale}, ErrInvalid},
		{"missing id", Transaction{Type: Income}, ErrInvalid},
		{"wrong debt", func() Transaction {
			tx := sale("x1", "c1", "0", item("p1", 1, "10"))
			tx.DebtAmount = decimal.Zero
			return tx
		}(), ErrInvalid},
		{"walk-in paid in full", sale("x1", "", "10", item("p1", 1, "10")), nil},
		{"walk-in on credit", sale("x1", "", "0", item("p1", 1, "10")), ErrInvalid},
		{"settlement sign", Transaction{ID: "x1", Type: DebtCollection, ContactID: "c1", Subtotal: d("5"), Total: d("5"), PaidAmount: d("5"), DebtAmount: d("5")}, ErrInvalid},
		{"settlement", Transaction{ID: "x1", Type: DebtPayment, ContactID: "s1", Subtotal: d("5"), Total: d("5"), PaidAmount: d("5"), DebtAmount: d("-5")}, nil},
		{"settlement without total", Transaction{ID: "x1", Type: DebtCollection, ContactID: "c1", PaidAmount: d("5"), DebtAmount: d("-5")}, ErrInvalid},
		{"income with discount", Transaction{ID: "x1", Type: Income, Subtotal: d("5"), Discount: d("1"), Total: d("5"), PaidAmount: d("5")}, ErrInvalid},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := l.Validate(tc.tx)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestLedger_Scenario walks through a day at the shop.
func TestLedger_Scenario(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	p, err := l.AddProduct(Product{ID: "A", Name: "Widget", CostPrice: d("60"), SalePrice: d("100"), Stock: 10, MinStock: 2})
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	c, err := l.AddContact(Contact{ID: "C", Name: "Customer C", Type: Customer})
	if err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}

	tx, err := l.NewSale(Order{ContactID: c.ID, Lines: []Line{{ProductID: p.ID, Quantity: 3}}, Paid: decimal.NewNullDecimal(d("200"))})
	if err != nil {
		t.Fatalf("NewSale() error = %v", err)
	}
	assertDecimal(t, "total", tx.Total, d("300"))
	assertDecimal(t, "debt", tx.DebtAmount, d("100"))
	l.Record(ctx, tx)

	if got := stockOf(t, l, "A"); got != 7 {
		t.Errorf("stock = %d, want 7", got)
	}
	assertDecimal(t, "balance", balanceOf(t, l, "C"), d("100"))

	dash := l.Dashboard()
	assertDecimal(t, "sales total", dash.SalesTotal, d("300"))
	assertDecimal(t, "gross margin", dash.GrossMargin, d("120"))
	assertDecimal(t, "income", dash.Income, d("200"))
	assertDecimal(t, "customer debt", dash.CustomerDebt, d("100"))

	collect, err := l.NewDebtCollection(Entry{ContactID: "C", Amount: d("100")})
	if err != nil {
		t.Fatalf("NewDebtCollection() error = %v", err)
	}
	l.Record(ctx, collect)
	assertDecimal(t, "balance after collection", balanceOf(t, l, "C"), d("0"))
	assertDecimal(t, "income after collection", l.Dashboard().Income, d("300"))
}

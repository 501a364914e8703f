package smartbiz

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Dashboard is the overview of the books. Every figure is derived from the
// ledger's current state.
type Dashboard struct {
	SalesTotal    decimal.Decimal // sum of sale totals
	PurchaseTotal decimal.Decimal // sum of purchase totals
	// GrossMargin is the sales total minus the cost of the goods sold, valued
	// at each product's current cost price.
	GrossMargin  decimal.Decimal
	Income       decimal.Decimal // cash received: sales, other income, debt collections
	Expense      decimal.Decimal // cash paid: purchases, other expenses, debt payments
	Net          decimal.Decimal // Income - Expense
	CustomerDebt decimal.Decimal // owed by customers
	SupplierDebt decimal.Decimal // owed to suppliers

	Products     int
	Contacts     int
	Transactions int
	OutOfStock   []Product
	LowStock     []Product
	Recent       []Transaction // most recent first
}

// RecentCount is the number of transactions shown on the dashboard.
const RecentCount = 5

// Dashboard computes the overview of the books.
func (l *Ledger) Dashboard() Dashboard {
	d := Dashboard{
		SalesTotal:    decimal.Zero,
		PurchaseTotal: decimal.Zero,
		Income:        decimal.Zero,
		Expense:       decimal.Zero,
		CustomerDebt:  decimal.Zero,
		SupplierDebt:  decimal.Zero,
		Products:      len(l.products),
		Contacts:      len(l.contacts),
		Transactions:  len(l.transactions),
	}
	costOfGoods := decimal.Zero
	for _, tx := range l.transactions {
		switch {
		case tx.Type == Sale:
			d.SalesTotal = d.SalesTotal.Add(tx.Total)
			for _, it := range tx.Items {
				if p, ok := l.Product(it.ProductID); ok {
					costOfGoods = costOfGoods.Add(p.CostPrice.Mul(dec(it.Quantity)))
				}
			}
		case tx.Type == Purchase:
			d.PurchaseTotal = d.PurchaseTotal.Add(tx.Total)
		}
		switch {
		case tx.Type.IsInflow():
			d.Income = d.Income.Add(tx.PaidAmount)
		case tx.Type.IsOutflow():
			d.Expense = d.Expense.Add(tx.PaidAmount)
		}
	}
	d.GrossMargin = d.SalesTotal.Sub(costOfGoods)
	d.Net = d.Income.Sub(d.Expense)

	for _, c := range l.contacts {
		switch c.Type {
		case Customer:
			d.CustomerDebt = d.CustomerDebt.Add(c.Balance)
		case Supplier:
			d.SupplierDebt = d.SupplierDebt.Add(c.Balance)
		}
	}
	for _, p := range l.products {
		if p.IsOutOfStock() {
			d.OutOfStock = append(d.OutOfStock, p)
		}
		if p.IsLowStock() {
			d.LowStock = append(d.LowStock, p)
		}
	}
	recent := l.Select()
	d.Recent = recent[:min(RecentCount, len(recent))]
	return d
}

// Report lists the sales or the purchases selected by filters, newest first,
// with their totals.
type Report struct {
	Type         TransactionType
	Transactions []Transaction
	Total        decimal.Decimal
	Paid         decimal.Decimal
	Debt         decimal.Decimal
	Discount     decimal.Decimal
	Quantity     int64
}

// Report builds the report of a sale or purchase journal.
func (l *Ledger) Report(typ TransactionType, filters ...Filter) (Report, error) {
	if typ != Sale && typ != Purchase {
		return Report{}, fmt.Errorf("%w: reports cover sales or purchases, not %s", ErrInvalid, typ)
	}
	r := Report{
		Type:         typ,
		Transactions: l.Select(append([]Filter{ByType(typ)}, filters...)...),
		Total:        decimal.Zero,
		Paid:         decimal.Zero,
		Debt:         decimal.Zero,
		Discount:     decimal.Zero,
	}
	for _, tx := range r.Transactions {
		r.Total = r.Total.Add(tx.Total)
		r.Paid = r.Paid.Add(tx.PaidAmount)
		r.Debt = r.Debt.Add(tx.DebtAmount)
		r.Discount = r.Discount.Add(tx.Discount)
		r.Quantity += tx.Quantity()
	}
	return r, nil
}

// Finance is the cash journal: every transaction selected by filters with
// the cash received and paid.
type Finance struct {
	Transactions []Transaction
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
}

// Finance builds the cash journal.
func (l *Ledger) Finance(filters ...Filter) Finance {
	f := Finance{
		Transactions: l.Select(filters...),
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
	}
	for _, tx := range f.Transactions {
		switch {
		case tx.Type.IsInflow():
			f.Income = f.Income.Add(tx.PaidAmount)
		case tx.Type.IsOutflow():
			f.Expense = f.Expense.Add(tx.PaidAmount)
		}
	}
	f.Net = f.Income.Sub(f.Expense)
	return f
}

// DebtBook lists the contacts of a type with an outstanding balance.
type DebtBook struct {
	Type     ContactType
	Contacts []Contact
	Total    decimal.Decimal
}

// Debts returns the contacts of type ct with a positive balance whose name or
// phone contains term.
func (l *Ledger) Debts(ct ContactType, term string) DebtBook {
	b := DebtBook{Type: ct, Total: decimal.Zero}
	for _, c := range l.SearchContacts(ct, term) {
		if c.Balance.IsPositive() {
			b.Contacts = append(b.Contacts, c)
			b.Total = b.Total.Add(c.Balance)
		}
	}
	return b
}

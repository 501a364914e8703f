package smartbiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Default counterpart names.
const (
	WalkInCustomer = "Khách lẻ"
	OtherIncome    = "Khoản thu ngoài"
	OtherExpense   = "Khoản chi ngoài"
)

// Line is one product of an order.
type Line struct {
	ProductID string
	Quantity  int64
	// Price overrides the catalog price (sale price for a sale, cost price
	// for a purchase).
	Price decimal.NullDecimal
}

// Order describes a sale or a purchase.
type Order struct {
	Date      time.Time // now when zero
	ContactID string    // empty for a walk-in sale
	Lines     []Line
	Discount  decimal.Decimal
	// Paid is the amount settled at checkout. It defaults to the total for a
	// sale and to zero for a purchase.
	Paid decimal.NullDecimal
	Note string
}

// Entry describes a cash movement or a debt settlement.
type Entry struct {
	Date      time.Time // now when zero
	ContactID string
	Name      string // counterpart name when there is no contact
	Amount    decimal.Decimal
	Note      string
}

// NewSale builds a sale. Lines for the same product are merged, and the
// quantity sold cannot exceed the product's stock. A sale without contact is
// a walk-in sale and must be paid in full.
func (l *Ledger) NewSale(o Order) (Transaction, error) {
	items, err := l.items(o.Lines, Sale)
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:          newID("S"),
		Type:        Sale,
		Date:        dateOr(o.Date),
		ContactName: WalkInCustomer,
		Items:       items,
		Note:        strings.TrimSpace(o.Note),
	}
	if o.ContactID != "" {
		c, err := l.counterpart(o.ContactID, Customer)
		if err != nil {
			return Transaction{}, err
		}
		tx.ContactID, tx.ContactName = c.ID, c.Name
	}
	if err := settle(&tx, o.Discount, o.Paid, true); err != nil {
		return Transaction{}, err
	}
	if err := checkWalkIn(tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// checkWalkIn refuses a debt without a contact to carry it.
func checkWalkIn(tx Transaction) error {
	if tx.ContactID == "" && tx.DebtAmount.IsPositive() {
		return fmt.Errorf("%w: %s left unpaid needs a customer", ErrInvalid, tx.DebtAmount)
	}
	return nil
}

// NewPurchase builds a purchase from a supplier.
func (l *Ledger) NewPurchase(o Order) (Transaction, error) {
	if o.ContactID == "" {
		return Transaction{}, fmt.Errorf("%w: a purchase needs a supplier", ErrInvalid)
	}
	c, err := l.counterpart(o.ContactID, Supplier)
	if err != nil {
		return Transaction{}, err
	}
	items, err := l.items(o.Lines, Purchase)
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:          newID("P"),
		Type:        Purchase,
		Date:        dateOr(o.Date),
		ContactID:   c.ID,
		ContactName: c.Name,
		Items:       items,
		Note:        strings.TrimSpace(o.Note),
	}
	if err := settle(&tx, o.Discount, o.Paid, false); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// items resolves order lines into transaction items.
func (l *Ledger) items(lines []Line, typ TransactionType) ([]TransactionItem, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: the %s has no items", ErrInvalid, strings.ToLower(string(typ)))
	}
	var (
		items []TransactionItem
		errs  []error
	)
	for _, line := range lines {
		if line.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("%w: quantity of %q must be positive, got %d", ErrInvalid, line.ProductID, line.Quantity))
			continue
		}
		p, ok := l.Product(line.ProductID)
		if !ok {
			errs = append(errs, fmt.Errorf("product %q: %w", line.ProductID, ErrNotFound))
			continue
		}
		price := p.SalePrice
		if typ == Purchase {
			price = p.CostPrice
		}
		if line.Price.Valid {
			price = line.Price.Decimal
		}
		if price.IsNegative() {
			errs = append(errs, fmt.Errorf("%w: price of %q cannot be negative", ErrInvalid, p.Name))
			continue
		}
		if i := indexItem(items, p.ID); i >= 0 {
			items[i].Quantity += line.Quantity
			items[i].Total = items[i].Price.Mul(dec(items[i].Quantity))
			continue
		}
		items = append(items, TransactionItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			Price:     price,
			Total:     price.Mul(dec(line.Quantity)),
			Image:     p.Image,
		})
	}
	if typ == Sale {
		for _, it := range items {
			p, _ := l.Product(it.ProductID)
			switch {
			case p.IsOutOfStock():
				errs = append(errs, fmt.Errorf("%w: %s is out of stock", ErrInvalid, p.Name))
			case it.Quantity > p.Stock:
				errs = append(errs, fmt.Errorf("%w: only %d %s of %s left, cannot sell %d", ErrInvalid, p.Stock, p.Unit, p.Name, it.Quantity))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return items, nil
}

func indexItem(items []TransactionItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// settle computes subtotal, total, paid and debt of a sale or purchase.
func settle(tx *Transaction, discount decimal.Decimal, paid decimal.NullDecimal, paidDefaultsToTotal bool) error {
	subtotal := decimal.Zero
	for _, it := range tx.Items {
		subtotal = subtotal.Add(it.Total)
	}
	if discount.IsNegative() {
		return fmt.Errorf("%w: discount cannot be negative", ErrInvalid)
	}
	if discount.GreaterThan(subtotal) {
		return fmt.Errorf("%w: discount %s exceeds subtotal %s", ErrInvalid, discount, subtotal)
	}
	tx.Subtotal = subtotal
	tx.Discount = discount
	tx.Total = subtotal.Sub(discount)
	switch {
	case paid.Valid:
		tx.PaidAmount = paid.Decimal
	case paidDefaultsToTotal:
		tx.PaidAmount = tx.Total
	default:
		tx.PaidAmount = decimal.Zero
	}
	if tx.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: paid amount cannot be negative", ErrInvalid)
	}
	tx.DebtAmount = expectedDebt(*tx)
	return nil
}

// NewIncome builds a cash receipt that is neither a sale nor a debt
// collection.
func (l *Ledger) NewIncome(e Entry) (Transaction, error) { return l.cashEntry(e, Income, "INC", OtherIncome) }

// NewExpense builds a cash payment that is neither a purchase nor a debt
// payment.
func (l *Ledger) NewExpense(e Entry) (Transaction, error) {
	return l.cashEntry(e, Expense, "EXP", OtherExpense)
}

func (l *Ledger) cashEntry(e Entry, typ TransactionType, prefix, defaultName string) (Transaction, error) {
	if !e.Amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalid, e.Amount)
	}
	tx := Transaction{
		ID:          newID(prefix),
		Type:        typ,
		Date:        dateOr(e.Date),
		ContactName: strings.TrimSpace(e.Name),
		Subtotal:    e.Amount,
		Discount:    decimal.Zero,
		Total:       e.Amount,
		PaidAmount:  e.Amount,
		DebtAmount:  decimal.Zero,
		Note:        strings.TrimSpace(e.Note),
	}
	if e.ContactID != "" {
		c, ok := l.Contact(e.ContactID)
		if !ok {
			return Transaction{}, fmt.Errorf("contact %q: %w", e.ContactID, ErrNotFound)
		}
		tx.ContactID, tx.ContactName = c.ID, c.Name
	}
	if tx.ContactName == "" {
		tx.ContactName = defaultName
	}
	return tx, nil
}

// NewDebtCollection builds the settlement of a customer's debt: the shop
// receives Amount and the customer's balance drops by as much.
func (l *Ledger) NewDebtCollection(e Entry) (Transaction, error) {
	return l.settlement(e, DebtCollection, Customer, "DC", "Thu nợ khách: ")
}

// NewDebtPayment builds the settlement of the shop's debt to a supplier.
func (l *Ledger) NewDebtPayment(e Entry) (Transaction, error) {
	return l.settlement(e, DebtPayment, Supplier, "DP", "Trả nợ nhà cung cấp: ")
}

func (l *Ledger) settlement(e Entry, typ TransactionType, ct ContactType, prefix, notePrefix string) (Transaction, error) {
	if !e.Amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalid, e.Amount)
	}
	if e.ContactID == "" {
		return Transaction{}, fmt.Errorf("%w: %s needs a contact", ErrInvalid, strings.ToLower(string(typ)))
	}
	c, err := l.counterpart(e.ContactID, ct)
	if err != nil {
		return Transaction{}, err
	}
	note := strings.TrimSpace(e.Note)
	if note == "" {
		note = notePrefix + c.Name
	}
	return Transaction{
		ID:          newID(prefix),
		Type:        typ,
		Date:        dateOr(e.Date),
		ContactID:   c.ID,
		ContactName: c.Name,
		Subtotal:    e.Amount,
		Discount:    decimal.Zero,
		Total:       e.Amount,
		PaidAmount:  e.Amount,
		DebtAmount:  e.Amount.Neg(),
		Note:        note,
	}, nil
}

// counterpart returns the contact id, which must be of type ct.
func (l *Ledger) counterpart(id string, ct ContactType) (Contact, error) {
	c, ok := l.Contact(id)
	if !ok {
		return Contact{}, fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}
	if c.Type != ct {
		return Contact{}, fmt.Errorf("%w: %s is a %s, want a %s", ErrInvalid, c.Name, strings.ToLower(string(c.Type)), strings.ToLower(string(ct)))
	}
	return c, nil
}

func dateOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

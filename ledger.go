package smartbiz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Notifier is told about every recorded sale and purchase.
type Notifier interface {
	Notify(ctx context.Context, tx Transaction) error
}

// WarningKind classifies the references Record had to skip.
type WarningKind string

const (
	MissingProduct WarningKind = "missing-product"
	MissingContact WarningKind = "missing-contact"
	DuplicateID    WarningKind = "duplicate-id"
	ClampedStock   WarningKind = "clamped-stock"
)

// Warning reports an effect that could not be fully applied.
type Warning struct {
	Kind     WarningKind
	TxID     string // transaction being recorded
	Ref      string // missing product or contact id, or the duplicate id
	Quantity int64  // units the stock of Ref lacked, for ClampedStock
}

func (w Warning) String() string {
	switch w.Kind {
	case MissingProduct:
		return fmt.Sprintf("transaction %s: unknown product %q, stock left unchanged", w.TxID, w.Ref)
	case MissingContact:
		return fmt.Sprintf("transaction %s: unknown contact %q, balance left unchanged", w.TxID, w.Ref)
	case DuplicateID:
		return fmt.Sprintf("transaction %s: id already recorded", w.TxID)
	case ClampedStock:
		return fmt.Sprintf("transaction %s: stock of %q short by %d, clamped at zero", w.TxID, w.Ref, w.Quantity)
	default:
		return fmt.Sprintf("transaction %s: %s %q", w.TxID, w.Kind, w.Ref)
	}
}

// Receipt is the outcome of recording a transaction.
type Receipt struct {
	Transaction Transaction
	Warnings    []Warning
}

// OK reports whether every effect of the transaction was applied.
func (r Receipt) OK() bool { return len(r.Warnings) == 0 }

// Ledger holds the products, contacts and transactions of a shop.
//
// Transactions are kept newest first. A Ledger is not safe for concurrent
// use.
type Ledger struct {
	products     []Product
	contacts     []Contact
	transactions []Transaction

	notifier Notifier
	pending  sync.WaitGroup

	// Region is the default region used to validate contact phone numbers,
	// as an ISO 3166 code.
	Region string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		products:     make([]Product, 0),
		contacts:     make([]Contact, 0),
		transactions: make([]Transaction, 0),
		Region:       "VN",
	}
}

// SetNotifier attaches n to the ledger. A nil n disables notifications.
func (l *Ledger) SetNotifier(n Notifier) { l.notifier = n }

// Wait blocks until every notification dispatched by Record has completed.
func (l *Ledger) Wait() { l.pending.Wait() }

// Record prepends tx to the journal and applies its effects:
//   - a sale decreases, and a purchase increases, the stock of each item's
//     product, clamped at zero;
//   - the contact's balance moves by tx.DebtAmount.
//
// Record never fails. References that do not resolve are skipped and
// reported in the receipt, as are clamped stocks. The units a sale could not
// take from stock are kept in the item's Shortfall so that deleting the sale
// gives back only what it took. Sales and purchases are then handed to the
// notifier, if any, without waiting for it; a notification failure is logged
// and leaves the ledger untouched.
func (l *Ledger) Record(ctx context.Context, tx Transaction) Receipt {
	tx = tx.Clone()
	var r Receipt
	if l.transactionIndex(tx.ID) >= 0 {
		r.Warnings = append(r.Warnings, Warning{Kind: DuplicateID, TxID: tx.ID, Ref: tx.ID})
	}
	r.Warnings = append(r.Warnings, l.apply(tx, false)...)
	l.transactions = slices.Insert(l.transactions, 0, tx)
	r.Transaction = tx.Clone()

	for _, w := range r.Warnings {
		log.Warn().Str("tx", w.TxID).Str("kind", string(w.Kind)).Str("ref", w.Ref).Msg(w.String())
	}
	log.Debug().Str("tx", tx.ID).Str("type", string(tx.Type)).Str("total", tx.Total.String()).Msg("recorded")

	if tx.Type.movesStock() && l.notifier != nil {
		l.dispatch(ctx, tx.Clone())
	}
	return r
}

// apply moves stock and balance for tx, or undoes it when reverse is set.
// Applying a sale writes the shortfall of each item into tx.Items.
func (l *Ledger) apply(tx Transaction, reverse bool) []Warning {
	return append(l.applyStock(tx, reverse), l.applyBalance(tx, reverse)...)
}

func (l *Ledger) applyStock(tx Transaction, reverse bool) (warnings []Warning) {
	if !tx.Type.movesStock() {
		return nil
	}
	for j := range tx.Items {
		it := &tx.Items[j]
		i := l.productIndex(it.ProductID)
		if i < 0 {
			warnings = append(warnings, Warning{Kind: MissingProduct, TxID: tx.ID, Ref: it.ProductID})
			continue
		}
		var delta int64
		switch {
		case tx.Type == Sale && !reverse:
			delta = -it.Quantity
		case tx.Type == Sale:
			delta = it.Quantity - it.Shortfall
		case !reverse:
			delta = it.Quantity
		default:
			delta = -it.Quantity
		}
		stock := l.products[i].Stock + delta
		var short int64
		if stock < 0 {
			short, stock = -stock, 0
			warnings = append(warnings, Warning{Kind: ClampedStock, TxID: tx.ID, Ref: it.ProductID, Quantity: short})
		}
		if tx.Type == Sale && !reverse {
			it.Shortfall = short
		}
		l.products[i].Stock = stock
	}
	return warnings
}

func (l *Ledger) applyBalance(tx Transaction, reverse bool) []Warning {
	if tx.ContactID == "" {
		return nil
	}
	i := l.contactIndex(tx.ContactID)
	if i < 0 {
		return []Warning{{Kind: MissingContact, TxID: tx.ID, Ref: tx.ContactID}}
	}
	delta := tx.DebtAmount
	if reverse {
		delta = delta.Neg()
	}
	l.contacts[i].Balance = l.contacts[i].Balance.Add(delta)
	return nil
}

func (l *Ledger) dispatch(ctx context.Context, tx Transaction) {
	n := l.notifier
	ctx = context.WithoutCancel(ctx)
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		if err := n.Notify(ctx, tx); err != nil {
			log.Error().Err(err).Str("tx", tx.ID).Msg("notification failed")
		}
	}()
}

// Validate checks tx for internal consistency and for references to unknown
// products and contacts. Record does not require it.
func (l *Ledger) Validate(tx Transaction) error {
	var errs []error
	if tx.ID == "" {
		errs = append(errs, fmt.Errorf("%w: missing id", ErrInvalid))
	}
	if !tx.Type.IsValid() {
		errs = append(errs, fmt.Errorf("%w: unknown type %q", ErrInvalid, tx.Type))
	}
	if tx.Type.movesStock() {
		if len(tx.Items) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s without items", ErrInvalid, tx.Type))
		}
		for _, it := range tx.Items {
			if it.Quantity <= 0 {
				errs = append(errs, fmt.Errorf("%w: item %q has quantity %d", ErrInvalid, it.ProductID, it.Quantity))
			}
			if l.productIndex(it.ProductID) < 0 {
				errs = append(errs, fmt.Errorf("product %q: %w", it.ProductID, ErrNotFound))
			}
		}
		if !tx.Total.Equal(tx.Subtotal.Sub(tx.Discount)) {
			errs = append(errs, fmt.Errorf("%w: total %s is not subtotal %s minus discount %s", ErrInvalid, tx.Total, tx.Subtotal, tx.Discount))
		}
		if want := expectedDebt(tx); !tx.DebtAmount.Equal(want) {
			errs = append(errs, fmt.Errorf("%w: debt %s, want %s", ErrInvalid, tx.DebtAmount, want))
		} else if err := checkWalkIn(tx); err != nil {
			errs = append(errs, err)
		}
	} else if tx.Type.IsValid() {
		if !tx.Subtotal.Equal(tx.PaidAmount) || !tx.Total.Equal(tx.PaidAmount) || !tx.Discount.IsZero() {
			errs = append(errs, fmt.Errorf("%w: %s must have subtotal %s and total %s equal to paid %s, without discount", ErrInvalid, tx.Type, tx.Subtotal, tx.Total, tx.PaidAmount))
		}
	}
	if tx.Type == DebtCollection || tx.Type == DebtPayment {
		if !tx.DebtAmount.Equal(tx.PaidAmount.Neg()) {
			errs = append(errs, fmt.Errorf("%w: debt %s must be the opposite of paid %s", ErrInvalid, tx.DebtAmount, tx.PaidAmount))
		}
	}
	if tx.ContactID != "" && l.contactIndex(tx.ContactID) < 0 {
		errs = append(errs, fmt.Errorf("contact %q: %w", tx.ContactID, ErrNotFound))
	}
	return errors.Join(errs...)
}

// expectedDebt is the debt a sale or purchase must carry.
func expectedDebt(tx Transaction) decimal.Decimal {
	return maxDecimal(decimal.Zero, tx.Total.Sub(tx.PaidAmount))
}

// Products returns a copy of the catalog, in insertion order.
func (l *Ledger) Products() []Product { return slices.Clone(l.products) }

// Contacts returns a copy of the contact book, in insertion order.
func (l *Ledger) Contacts() []Contact { return slices.Clone(l.contacts) }

// Transactions returns a copy of the journal, newest first.
func (l *Ledger) Transactions() []Transaction {
	txs := make([]Transaction, len(l.transactions))
	for i, tx := range l.transactions {
		txs[i] = tx.Clone()
	}
	return txs
}

// Product returns the product with that id.
func (l *Ledger) Product(id string) (Product, bool) {
	if i := l.productIndex(id); i >= 0 {
		return l.products[i], true
	}
	return Product{}, false
}

// Contact returns the contact with that id.
func (l *Ledger) Contact(id string) (Contact, bool) {
	if i := l.contactIndex(id); i >= 0 {
		return l.contacts[i], true
	}
	return Contact{}, false
}

// Transaction returns the transaction with that id.
func (l *Ledger) Transaction(id string) (Transaction, bool) {
	if i := l.transactionIndex(id); i >= 0 {
		return l.transactions[i].Clone(), true
	}
	return Transaction{}, false
}

func (l *Ledger) productIndex(id string) int {
	return slices.IndexFunc(l.products, func(p Product) bool { return p.ID == id })
}

func (l *Ledger) contactIndex(id string) int {
	return slices.IndexFunc(l.contacts, func(c Contact) bool { return c.ID == id })
}

func (l *Ledger) transactionIndex(id string) int {
	return slices.IndexFunc(l.transactions, func(tx Transaction) bool { return tx.ID == id })
}

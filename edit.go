package smartbiz

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DeleteTransaction removes a transaction and reverses its effects: stock
// moves back and the contact's balance loses the transaction's debt. A sale
// gives back what it took from stock, its quantity less its shortfall.
// Taking back a purchase whose units were already sold clamps the stock at
// zero and reports it.
func (l *Ledger) DeleteTransaction(id string) (Receipt, error) {
	i := l.transactionIndex(id)
	if i < 0 {
		return Receipt{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	tx := l.transactions[i]
	l.transactions = slices.Delete(l.transactions, i, i+1)
	r := Receipt{Transaction: tx, Warnings: l.apply(tx, true)}
	for _, w := range r.Warnings {
		log.Warn().Str("tx", w.TxID).Str("kind", string(w.Kind)).Str("ref", w.Ref).Msg(w.String())
	}
	return r, nil
}

// UpdateTransaction replaces the transaction with the same id, keeping its
// position in the journal. The effects of the old version on contact
// balances are reversed and those of the new version applied.
//
// The type and the items cannot change: to correct a sale or a purchase,
// delete it and record a new one.
func (l *Ledger) UpdateTransaction(tx Transaction) (Receipt, error) {
	i := l.transactionIndex(tx.ID)
	if i < 0 {
		return Receipt{}, fmt.Errorf("transaction %q: %w", tx.ID, ErrNotFound)
	}
	old := l.transactions[i]
	if tx.Type != old.Type {
		return Receipt{}, fmt.Errorf("%w: cannot change the type of %s from %s to %s", ErrInvalid, tx.ID, old.Type, tx.Type)
	}
	if !sameItems(old.Items, tx.Items) {
		return Receipt{}, fmt.Errorf("%w: cannot change the items of %s, delete it and record a new one", ErrInvalid, tx.ID)
	}
	tx = tx.Clone()
	for j := range tx.Items {
		tx.Items[j].Shortfall = old.Items[j].Shortfall
	}
	l.transactions[i] = tx

	// items are unchanged, only the balance moves
	r := Receipt{Transaction: tx}
	r.Warnings = append(r.Warnings, l.applyBalance(old, true)...)
	r.Warnings = append(r.Warnings, l.applyBalance(tx, false)...)
	for _, w := range r.Warnings {
		log.Warn().Str("tx", w.TxID).Str("kind", string(w.Kind)).Str("ref", w.Ref).Msg("reference skipped while updating")
	}
	log.Debug().Str("tx", tx.ID).Msg("updated")
	return r, nil
}

func sameItems(a, b []TransactionItem) bool {
	return slices.EqualFunc(a, b, func(x, y TransactionItem) bool {
		return x.ProductID == y.ProductID && x.Quantity == y.Quantity
	})
}

// Amendment lists the corrections Amend can make. Unset fields are kept.
type Amendment struct {
	Date time.Time
	// Amount is the amount of an income, expense or debt settlement.
	Amount decimal.NullDecimal
	// Paid is the amount paid at checkout of a sale or purchase.
	Paid decimal.NullDecimal
	Note *string
}

// Amend corrects a transaction in place, recomputing its derived amounts,
// then applies it with UpdateTransaction.
func (l *Ledger) Amend(id string, a Amendment) (Receipt, error) {
	tx, ok := l.Transaction(id)
	if !ok {
		return Receipt{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	if !a.Date.IsZero() {
		tx.Date = a.Date
	}
	if a.Note != nil {
		tx.Note = *a.Note
	}
	switch tx.Type {
	case Sale, Purchase:
		if a.Amount.Valid {
			return Receipt{}, fmt.Errorf("%w: the amount of a %s comes from its items", ErrInvalid, tx.Type)
		}
		if a.Paid.Valid {
			if a.Paid.Decimal.IsNegative() {
				return Receipt{}, fmt.Errorf("%w: paid amount cannot be negative", ErrInvalid)
			}
			tx.PaidAmount = a.Paid.Decimal
			tx.DebtAmount = expectedDebt(tx)
			if err := checkWalkIn(tx); err != nil {
				return Receipt{}, err
			}
		}
	case Income, Expense:
		if a.Amount.Valid {
			if !a.Amount.Decimal.IsPositive() {
				return Receipt{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
			}
			tx.Subtotal, tx.Total, tx.PaidAmount = a.Amount.Decimal, a.Amount.Decimal, a.Amount.Decimal
		}
	case DebtCollection, DebtPayment:
		if a.Amount.Valid {
			if !a.Amount.Decimal.IsPositive() {
				return Receipt{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
			}
			tx.Subtotal, tx.Total = a.Amount.Decimal, a.Amount.Decimal
			tx.PaidAmount, tx.DebtAmount = a.Amount.Decimal, a.Amount.Decimal.Neg()
		}
	}
	return l.UpdateTransaction(tx)
}

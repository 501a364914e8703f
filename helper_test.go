package smartbiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// d parses a decimal literal.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seeded returns a ledger holding the demonstration data.
func seeded() *Ledger { return FromSnapshot(Seed()) }

func stockOf(t *testing.T, l *Ledger, id string) int64 {
	t.Helper()
	p, ok := l.Product(id)
	if !ok {
		t.Fatalf("product %q not found", id)
	}
	return p.Stock
}

func balanceOf(t *testing.T, l *Ledger, id string) decimal.Decimal {
	t.Helper()
	c, ok := l.Contact(id)
	if !ok {
		t.Fatalf("contact %q not found", id)
	}
	return c.Balance
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// sale builds a ready-to-record sale without going through NewSale.
func sale(id, contact string, paid string, items ...TransactionItem) Transaction {
	return settled(Transaction{ID: id, Type: Sale, Date: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), ContactID: contact, Items: items}, paid)
}

// purchase builds a ready-to-record purchase without going through NewPurchase.
func purchase(id, contact string, paid string, items ...TransactionItem) Transaction {
	return settled(Transaction{ID: id, Type: Purchase, Date: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), ContactID: contact, Items: items}, paid)
}

func settled(tx Transaction, paid string) Transaction {
	if err := settle(&tx, decimal.Zero, decimal.NewNullDecimal(d(paid)), true); err != nil {
		panic(err)
	}
	return tx
}

func item(productID string, qty int64, price string) TransactionItem {
	return TransactionItem{ProductID: productID, Name: productID, Quantity: qty, Price: d(price), Total: d(price).Mul(dec(qty))}
}

// recordingNotifier remembers the transactions it is told about.
type recordingNotifier struct {
	mu  sync.Mutex
	txs []Transaction
	err error
}

func (n *recordingNotifier) Notify(_ context.Context, tx Transaction) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.txs = append(n.txs, tx)
	return n.err
}

func (n *recordingNotifier) ids() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var ids []string
	for _, tx := range n.txs {
		ids = append(ids, tx.ID)
	}
	return ids
}

var errNotifier = errors.New("chat service unavailable")

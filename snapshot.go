package smartbiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/etnz/smartbiz/store"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Snapshot is a copy of the three collections of a ledger.
type Snapshot struct {
	Products     []Product     `json:"products"`
	Contacts     []Contact     `json:"contacts"`
	Transactions []Transaction `json:"transactions"` // newest first
}

// Snapshot returns a deep copy of the ledger's collections.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Products:     l.Products(),
		Contacts:     l.Contacts(),
		Transactions: l.Transactions(),
	}
}

// FromSnapshot returns a ledger holding a copy of s. No effect is applied:
// the snapshot's stock and balances already account for its transactions.
func FromSnapshot(s Snapshot) *Ledger {
	l := NewLedger()
	l.products = append(l.products, s.Products...)
	l.contacts = append(l.contacts, s.Contacts...)
	for _, tx := range s.Transactions {
		l.transactions = append(l.transactions, tx.Clone())
	}
	return l
}

// Restore replaces the ledger's collections with a copy of s.
func (l *Ledger) Restore(s Snapshot) {
	fresh := FromSnapshot(s)
	l.products, l.contacts, l.transactions = fresh.products, fresh.contacts, fresh.transactions
}

// Load reads a ledger from st. Each collection that was never saved is
// replaced by the demonstration data of Seed.
func Load(ctx context.Context, st store.Store) (*Ledger, error) {
	seed := Seed()
	var s Snapshot
	errs := errors.Join(
		loadKey(ctx, st, store.KeyProducts, &s.Products, seed.Products),
		loadKey(ctx, st, store.KeyContacts, &s.Contacts, seed.Contacts),
		loadKey(ctx, st, store.KeyTransactions, &s.Transactions, seed.Transactions),
	)
	if errs != nil {
		return nil, errs
	}
	return FromSnapshot(s), nil
}

func loadKey[T any](ctx context.Context, st store.Store, key string, v *[]T, fallback []T) error {
	data, err := st.Get(ctx, key)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("key", key).Msg("not found, using demonstration data")
		*v = slices.Clone(fallback)
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cannot decode %q: %w", key, err)
	}
	if *v == nil {
		*v = make([]T, 0)
	}
	return nil
}

// Save writes the three collections of l to st.
func Save(ctx context.Context, st store.Store, l *Ledger) error {
	s := l.Snapshot()
	return errors.Join(
		saveKey(ctx, st, store.KeyProducts, nonNil(s.Products)),
		saveKey(ctx, st, store.KeyContacts, nonNil(s.Contacts)),
		saveKey(ctx, st, store.KeyTransactions, nonNil(s.Transactions)),
	)
}

func saveKey(ctx context.Context, st store.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	if err := st.Put(ctx, key, data); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}

// nonNil makes empty collections encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}

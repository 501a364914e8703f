package smartbiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/smartbiz/store"
)

func TestLoad_SeedFallback(t *testing.T) {
	l, err := Load(context.Background(), store.NewMemory())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	seed := Seed()
	if got := len(l.Products()); got != len(seed.Products) {
		t.Errorf("loaded %d products, want the %d demonstration products", got, len(seed.Products))
	}
	if got := len(l.Contacts()); got != len(seed.Contacts) {
		t.Errorf("loaded %d contacts, want %d", got, len(seed.Contacts))
	}
	if got := len(l.Transactions()); got != len(seed.Transactions) {
		t.Errorf("loaded %d transactions, want %d", got, len(seed.Transactions))
	}
}

func TestLoad_PartialFallback(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	if err := st.Put(ctx, store.KeyContacts, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	l, err := Load(ctx, st)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(l.Contacts()); got != 0 {
		t.Errorf("loaded %d contacts, want the saved empty list", got)
	}
	if got := len(l.Products()); got != 4 {
		t.Errorf("loaded %d products, want the demonstration products", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"malformed", store.KeyProducts, `{`, "cannot decode"},
		{"unknown transaction type", store.KeyTransactions, `[{"id":"x","type":"GIFT","date":"2025-01-01T00:00:00Z"}]`, "unknown type"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			st := store.NewMemory()
			if err := st.Put(ctx, tc.key, []byte(tc.value)); err != nil {
				t.Fatal(err)
			}
			_, err := Load(ctx, st)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir, err := store.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sqlite, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlite.Close() })

	for name, st := range map[string]store.Store{"memory": store.NewMemory(), "dir": dir, "sqlite": sqlite} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := seeded()
			l.Record(ctx, sale("x1", "c2", "100", item("p4", 2, "6200000")))
			if _, err := l.AddProduct(Product{Name: "Ốp lưng", SalePrice: d("150000"), Stock: 40}); err != nil {
				t.Fatal(err)
			}
			if err := Save(ctx, st, l); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := Load(ctx, st)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			want := l.Snapshot()
			gs := got.Snapshot()
			if len(gs.Transactions) != len(want.Transactions) {
				t.Fatalf("loaded %d transactions, want %d", len(gs.Transactions), len(want.Transactions))
			}
			for i := range want.Transactions {
				if !gs.Transactions[i].Equal(want.Transactions[i]) {
					t.Errorf("transaction %d = %+v, want %+v", i, gs.Transactions[i], want.Transactions[i])
				}
			}
			if len(gs.Products) != len(want.Products) {
				t.Fatalf("loaded %d products, want %d", len(gs.Products), len(want.Products))
			}
			for i, p := range want.Products {
				g := gs.Products[i]
				if g.ID != p.ID || g.SKU != p.SKU || g.Stock != p.Stock || !g.SalePrice.Equal(p.SalePrice) {
					t.Errorf("product %d = %+v, want %+v", i, g, p)
				}
			}
			// loading does not apply the transactions again
			if got := stockOf(t, got, "p4"); got != 23 {
				t.Errorf("stock of p4 = %d, want 23", got)
			}
			assertDecimal(t, "balance of c2", balanceOf(t, got, "c2"), d("12399900"))
		})
	}
}

func TestSave_EmptyCollections(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	if err := Save(ctx, st, NewLedger()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	for _, key := range []string{store.KeyProducts, store.KeyContacts, store.KeyTransactions} {
		data, err := st.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", key, err)
		}
		if string(data) != "[]" {
			t.Errorf("%s = %s, want []", key, data)
		}
	}

	// an empty saved workspace stays empty
	l, err := Load(ctx, st)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(l.Products()) != 0 {
		t.Errorf("Load() brought back %d products", len(l.Products()))
	}
}

type failingStore struct{ store.Store }

func (failingStore) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestSave_Error(t *testing.T) {
	err := Save(context.Background(), failingStore{store.NewMemory()}, seeded())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Save() error = %v, want disk full", err)
	}
}

func TestRestore(t *testing.T) {
	l := seeded()
	l.Record(context.Background(), sale("x1", "", "1", item("p1", 1, "1")))
	l.Restore(Seed())
	if got := len(l.Transactions()); got != 2 {
		t.Errorf("Restore() left %d transactions, want 2", got)
	}
	if got := stockOf(t, l, "p1"); got != 15 {
		t.Errorf("stock of p1 = %d, want 15", got)
	}
}

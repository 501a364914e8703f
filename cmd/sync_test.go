package cmd

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/sheet"
	"github.com/google/subcommands"
)

func TestAutoSyncPushesSavedBooks(t *testing.T) {
	st, _ := setup(t)
	s, err := sheet.NewScheduler("@every 1s", sheet.New("", st), storedBooks(st))
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	// another command records a sale while the scheduler runs
	if got := run(t, &sellCmd{}, "-qr=false", "APP2"); got != subcommands.ExitSuccess {
		t.Fatalf("sell = %v", got)
	}
	id := load(t, st).Transactions()[0].ID

	pushed := func() bool {
		b, err := sheet.LoadBackup(context.Background(), st)
		if err != nil {
			return false
		}
		return slices.ContainsFunc(b.Data.Transactions, func(tx smartbiz.Transaction) bool { return tx.ID == id })
	}
	timeout := time.After(5 * time.Second)
	for !pushed() {
		select {
		case <-s.Done():
		case <-timeout:
			t.Fatalf("sale %s was not pushed within 5s", id)
		}
	}
}

func TestStoredBooks(t *testing.T) {
	st, _ := setup(t)
	books := storedBooks(st)
	before, err := books(context.Background())
	if err != nil {
		t.Fatalf("storedBooks() error = %v", err)
	}
	if got := run(t, newCashCmd(smartbiz.Expense), "-name", "Điện", "1,000,000"); got != subcommands.ExitSuccess {
		t.Fatalf("expense = %v", got)
	}
	after, err := books(context.Background())
	if err != nil {
		t.Fatalf("storedBooks() error = %v", err)
	}
	if len(after.Transactions) != len(before.Transactions)+1 {
		t.Errorf("transactions = %d, want %d", len(after.Transactions), len(before.Transactions)+1)
	}
}

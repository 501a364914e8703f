// Package store persists the workspace as a set of JSON documents under fixed
// keys.
//
// Three adapters implement [Store]: [Dir] keeps one file per key, [SQLite]
// keeps one row per key, and [Memory] is used by tests.
package store

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
)

// Keys under which the workspace is persisted.
const (
	KeyProducts      = "smartbiz_products"
	KeyContacts      = "smartbiz_contacts"
	KeyTransactions  = "smartbiz_transactions"
	KeyScriptURL     = "smartbiz_script_url"
	KeyTelegram      = "smartbiz_telegram_config"
	KeyBank          = "smartbiz_bank_config"
	KeyInvoice       = "smartbiz_invoice_config"
	KeyPrinter       = "smartbiz_printer_config"
	KeyBarcode       = "smartbiz_barcode_config"
	KeyAdminPassword = "smartbiz_admin_password"
	KeyLastSyncTime  = "smartbiz_last_sync_time"
	KeyLastSyncData  = "smartbiz_last_sync_data"
)

// Keys lists every known key.
var Keys = []string{
	KeyProducts, KeyContacts, KeyTransactions,
	KeyScriptURL, KeyTelegram, KeyBank, KeyInvoice, KeyPrinter, KeyBarcode,
	KeyAdminPassword, KeyLastSyncTime, KeyLastSyncData,
}

// ErrNotFound is returned by Get when a key has never been written.
// It matches fs.ErrNotExist.
var ErrNotFound = fmt.Errorf("key not found: %w", fs.ErrNotExist)

// Store is a key-value store of raw JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns the stored keys, sorted.
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Clear deletes every stored key.
func Clear(ctx context.Context, s Store) error {
	keys, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("cannot list keys: %w", err)
	}
	for _, k := range keys {
		if err := s.Delete(ctx, k); err != nil {
			return fmt.Errorf("cannot delete %q: %w", k, err)
		}
	}
	return nil
}

// Open opens a store of the given kind ("dir" or "sqlite") at location.
func Open(kind, location string) (Store, error) {
	switch kind {
	case "dir", "":
		return NewDir(location)
	case "sqlite":
		return OpenSQLite(location)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q, want one of dir, sqlite, memory", kind)
	}
}

func sorted(keys []string) []string {
	sort.Strings(keys)
	return keys
}

package smartbiz

import (
	"slices"
	"sort"
	"strings"

	"github.com/etnz/smartbiz/date"
)

// Filter selects transactions.
type Filter func(Transaction) bool

// ByType selects transactions of any of the given types.
func ByType(types ...TransactionType) Filter {
	return func(tx Transaction) bool { return slices.Contains(types, tx.Type) }
}

// ByContact selects the transactions of a contact.
func ByContact(id string) Filter {
	return func(tx Transaction) bool { return tx.ContactID == id }
}

// During selects transactions dated inside r, from the start of its first day
// to the end of its last day.
func During(r date.Range) Filter {
	return func(tx Transaction) bool { return r.ContainsTime(tx.Date) }
}

// Matching selects transactions whose id or contact name contains term,
// ignoring case and diacritics. An empty term selects everything.
func Matching(term string) Filter {
	term = Fold(strings.TrimSpace(term))
	return func(tx Transaction) bool {
		return term == "" || strings.Contains(Fold(tx.ID), term) || strings.Contains(Fold(tx.ContactName), term)
	}
}

// Select returns the transactions accepted by every filter, newest first.
func (l *Ledger) Select(filters ...Filter) []Transaction {
	var txs []Transaction
next:
	for _, tx := range l.transactions {
		for _, f := range filters {
			if !f(tx) {
				continue next
			}
		}
		txs = append(txs, tx.Clone())
	}
	sortByDateDesc(txs)
	return txs
}

// sortByDateDesc sorts by date, newest first, keeping journal order for
// equal dates.
func sortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
}

// Package smartbiz implements the books of a small retail shop: a catalog of
// products with stock levels, a book of customers and suppliers with running
// balances, and a journal of sales, purchases, cash movements and debt
// settlements.
//
// The central type is the [Ledger]. Recording a transaction prepends it to the
// journal and, in the same step, moves the stock of every product it sells or
// buys and the balance of the contact it names. Stock never goes below zero.
// Contact balances are signed: for a customer a positive balance is what the
// customer owes the shop, for a supplier it is what the shop owes the supplier.
//
// Recording never fails. A transaction that refers to a product or contact the
// ledger does not know is still recorded, the missing reference is skipped,
// and the skip is reported as a [Warning] on the returned [Receipt].
//
// Transactions are built and validated by the ledger's constructors
// ([Ledger.NewSale], [Ledger.NewPurchase], [Ledger.NewIncome],
// [Ledger.NewExpense], [Ledger.NewDebtCollection], [Ledger.NewDebtPayment]),
// which compute subtotals, totals and debts so that recorded transactions are
// always consistent.
//
// Everything the dashboard, reports and debt book show is derived on demand
// from the three collections and never stored.
//
// The ledger is persisted through a [store.Store] with [Load] and [Save]. Keys
// that were never written fall back to a small demonstration dataset.
package smartbiz

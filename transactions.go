package smartbiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of a transaction.
type TransactionType string

const (
	Sale           TransactionType = "SALE"
	Purchase       TransactionType = "PURCHASE"
	Income         TransactionType = "INCOME"
	Expense        TransactionType = "EXPENSE"
	DebtCollection TransactionType = "DEBT_COLLECTION"
	DebtPayment    TransactionType = "DEBT_PAYMENT"
)

// TransactionTypes lists every transaction type.
var TransactionTypes = []TransactionType{Sale, Purchase, Income, Expense, DebtCollection, DebtPayment}

var transactionLabels = map[TransactionType]string{
	Sale:           "Bán hàng",
	Purchase:       "Nhập hàng",
	Income:         "Thu ngoài",
	Expense:        "Chi ngoài",
	DebtCollection: "Thu nợ khách",
	DebtPayment:    "Trả nợ NCC",
}

// Label returns the display label of the type.
func (t TransactionType) Label() string {
	if l, ok := transactionLabels[t]; ok {
		return l
	}
	return string(t)
}

// IsValid reports whether t is one of the known types.
func (t TransactionType) IsValid() bool {
	_, ok := transactionLabels[t]
	return ok
}

// IsInflow reports whether the paid amount of t is cash received by the shop.
func (t TransactionType) IsInflow() bool {
	return t == Sale || t == Income || t == DebtCollection
}

// IsOutflow reports whether the paid amount of t is cash paid by the shop.
func (t TransactionType) IsOutflow() bool {
	return t == Purchase || t == Expense || t == DebtPayment
}

// movesStock reports whether t carries items that move stock.
func (t TransactionType) movesStock() bool { return t == Sale || t == Purchase }

// ParseTransactionType parses a type name or its label, case insensitive.
// Dashes are accepted in place of underscores.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if t.IsValid() {
		return t, nil
	}
	for typ, label := range transactionLabels {
		if Fold(label) == Fold(strings.TrimSpace(s)) {
			return typ, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// TransactionItem is a line of a sale or a purchase. Name and Price are
// copied from the product when the transaction is built.
type TransactionItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Image     string          `json:"image,omitempty"`
	// Shortfall is the part of a sold quantity that was not in stock when
	// the sale was recorded. Set by Record.
	Shortfall int64 `json:"shortfall,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for TransactionItem.
func (it TransactionItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("productId", it.ProductID)
	w.Append("name", it.Name)
	w.Append("quantity", it.Quantity)
	w.Append("price", it.Price)
	w.Append("total", it.Total)
	w.Optional("image", it.Image)
	if it.Shortfall > 0 {
		w.Append("shortfall", it.Shortfall)
	}
	return w.MarshalJSON()
}

// Transaction is an immutable record of a business event.
//
// Sales and purchases carry Items. DebtAmount is the signed change the
// transaction brings to the balance of ContactID.
type Transaction struct {
	ID          string            `json:"id"`
	Type        TransactionType   `json:"type"`
	Date        time.Time         `json:"date"`
	ContactID   string            `json:"contactId,omitempty"`
	ContactName string            `json:"contactName,omitempty"`
	Items       []TransactionItem `json:"items,omitempty"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	Discount    decimal.Decimal   `json:"discount"`
	Total       decimal.Decimal   `json:"total"`
	PaidAmount  decimal.Decimal   `json:"paidAmount"`
	DebtAmount  decimal.Decimal   `json:"debtAmount"`
	Note        string            `json:"note,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", tx.ID)
	w.Append("type", tx.Type)
	w.Append("date", tx.Date.Format(time.RFC3339Nano))
	w.Optional("contactId", tx.ContactID)
	w.Optional("contactName", tx.ContactName)
	if len(tx.Items) > 0 {
		w.Append("items", tx.Items)
	}
	w.Append("subtotal", tx.Subtotal)
	w.Append("discount", tx.Discount)
	w.Append("total", tx.Total)
	w.Append("paidAmount", tx.PaidAmount)
	w.Append("debtAmount", tx.DebtAmount)
	w.Optional("note", tx.Note)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if !p.Type.IsValid() {
		return fmt.Errorf("transaction %q: unknown type %q", p.ID, p.Type)
	}
	*tx = Transaction(p)
	return nil
}

// Quantity returns the total number of units moved by the transaction.
func (tx Transaction) Quantity() (n int64) {
	for _, it := range tx.Items {
		n += it.Quantity
	}
	return n
}

// Clone returns a deep copy of tx.
func (tx Transaction) Clone() Transaction {
	if tx.Items != nil {
		tx.Items = append([]TransactionItem(nil), tx.Items...)
	}
	return tx
}

// Equal reports whether two transactions hold the same values.
func (tx Transaction) Equal(o Transaction) bool {
	if tx.ID != o.ID || tx.Type != o.Type || !tx.Date.Equal(o.Date) ||
		tx.ContactID != o.ContactID || tx.ContactName != o.ContactName || tx.Note != o.Note ||
		!tx.Subtotal.Equal(o.Subtotal) || !tx.Discount.Equal(o.Discount) || !tx.Total.Equal(o.Total) ||
		!tx.PaidAmount.Equal(o.PaidAmount) || !tx.DebtAmount.Equal(o.DebtAmount) ||
		len(tx.Items) != len(o.Items) {
		return false
	}
	for i := range tx.Items {
		a, b := tx.Items[i], o.Items[i]
		if a.ProductID != b.ProductID || a.Name != b.Name || a.Quantity != b.Quantity ||
			!a.Price.Equal(b.Price) || !a.Total.Equal(b.Total) || a.Image != b.Image || a.Shortfall != b.Shortfall {
			return false
		}
	}
	return true
}

package renderer

import (
	"strings"
	"text/template"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/config"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

// ReceiptOptions holds what is printed around a transaction.
type ReceiptOptions struct {
	Invoice  config.Invoice
	Bank     config.Bank
	Currency string
	// QRCode draws the payment QR code in text, for terminals.
	QRCode bool
}

type receipt struct {
	Tx         smartbiz.Transaction
	Invoice    config.Invoice
	Bank       config.Bank
	Contact    string // address and phone of the shop
	PaymentURL string
	QRCode     string
}

func (o ReceiptOptions) funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return smartbiz.Format(d, o.Currency) },
		"date":  func(t time.Time) string { return t.Format("15:04:05 02/01/2006") },
		"cell":  cell,
		"upper": strings.ToUpper,
	}
}

var receiptPartials = map[string]string{
	"receipt_items":  "receipt_items.md",
	"receipt_totals": "receipt_totals.md",
}

// ReceiptMarkdown renders the customer receipt of a sale. A payment link for
// the order total is printed when a bank account is configured.
func ReceiptMarkdown(tx smartbiz.Transaction, opts ReceiptOptions) string {
	r := receipt{Tx: tx, Invoice: opts.Invoice, Bank: opts.Bank}

	var contact []string
	for _, s := range []string{opts.Invoice.Address, opts.Invoice.Phone} {
		if s != "" {
			contact = append(contact, s)
		}
	}
	r.Contact = strings.Join(contact, " - ")

	if opts.Bank.BankID != "" && opts.Bank.AccountNo != "" && tx.Total.IsPositive() {
		r.PaymentURL = opts.Bank.VietQR(tx.ID, tx.Total)
		if opts.QRCode {
			r.QRCode = terminalQR(r.PaymentURL)
		}
	}
	return renderTemplate("receipt", "receipt.md", receiptPartials, opts.funcs(), r)
}

// PurchaseSlipMarkdown renders the slip of a purchase.
func PurchaseSlipMarkdown(tx smartbiz.Transaction, opts ReceiptOptions) string {
	r := receipt{Tx: tx, Invoice: opts.Invoice}
	return renderTemplate("slip", "purchase_slip.md", receiptPartials, opts.funcs(), r)
}

// terminalQR draws content as a QR code made of block characters, or returns
// an empty string when it cannot be encoded.
func terminalQR(content string) string {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		log.Warn().Err(err).Msg("cannot draw the payment QR code")
		return ""
	}
	return strings.TrimRight(q.ToSmallString(false), "\n")
}

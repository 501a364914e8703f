package config

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// VietQR returns the address of the payment QR code image for an order of
// amount paid to b. The transfer message names the order.
func (b Bank) VietQR(orderID string, amount decimal.Decimal) string {
	q := url.Values{}
	q.Set("amount", amount.Round(0).String())
	q.Set("addInfo", "Don hang "+orderID)
	q.Set("accountName", b.AccountName)
	return fmt.Sprintf("https://img.vietqr.io/image/%s-%s-compact.png?%s",
		url.PathEscape(b.BankID), url.PathEscape(b.AccountNo), q.Encode())
}

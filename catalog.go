package smartbiz

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock is never negative.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Stock     int64           `json:"stock"`
	MinStock  int64           `json:"minStock"`
	Image     string          `json:"image,omitempty"`
}

// IsOutOfStock reports whether nothing is left to sell.
func (p Product) IsOutOfStock() bool { return p.Stock <= 0 }

// IsLowStock reports whether the stock reached the restocking threshold.
func (p Product) IsLowStock() bool { return p.Stock <= p.MinStock }

// Margin is the unit margin at current prices.
func (p Product) Margin() decimal.Decimal { return p.SalePrice.Sub(p.CostPrice) }

// MarshalJSON implements the json.Marshaler interface for Product.
func (p Product) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("sku", p.SKU)
	w.Append("category", p.Category)
	w.Append("unit", p.Unit)
	w.Append("costPrice", p.CostPrice)
	w.Append("salePrice", p.SalePrice)
	w.Append("stock", p.Stock)
	w.Append("minStock", p.MinStock)
	w.Optional("image", p.Image)
	return w.MarshalJSON()
}

// ContactType separates customers from suppliers.
type ContactType string

const (
	Customer ContactType = "CUSTOMER"
	Supplier ContactType = "SUPPLIER"
)

// Label returns the display label of the contact type.
func (t ContactType) Label() string {
	switch t {
	case Customer:
		return "Khách hàng"
	case Supplier:
		return "Nhà cung cấp"
	default:
		return string(t)
	}
}

// ParseContactType parses "customer" or "supplier", or their labels, case
// insensitive.
func ParseContactType(s string) (ContactType, error) {
	switch t := ContactType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Customer, Supplier:
		return t, nil
	}
	for _, t := range []ContactType{Customer, Supplier} {
		if Fold(t.Label()) == Fold(strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown contact type %q, want customer or supplier", s)
}

// Contact is a customer or a supplier.
//
// Balance is signed. For a customer it is the amount the customer owes, for a
// supplier the amount owed to the supplier.
type Contact struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Email   string          `json:"email,omitempty"`
	Address string          `json:"address,omitempty"`
	Type    ContactType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// MarshalJSON implements the json.Marshaler interface for Contact.
func (c Contact) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("name", c.Name)
	w.Append("phone", c.Phone)
	w.Optional("email", c.Email)
	w.Optional("address", c.Address)
	w.Append("type", c.Type)
	w.Append("balance", c.Balance)
	return w.MarshalJSON()
}

package smartbiz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

// Product defaults applied by AddProduct.
const (
	DefaultUnit     = "Cái"
	DefaultMinStock = 5
	// MaxImageSize is the largest accepted product image, in bytes of its
	// data URL.
	MaxImageSize = 1 << 20
)

// AddProduct adds p to the catalog and returns it as stored. An empty id or
// SKU is generated, an empty unit defaults to DefaultUnit.
func (l *Ledger) AddProduct(p Product) (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.ID == "" {
		p.ID = newID("p")
	}
	if p.SKU == "" {
		p.SKU = GenerateSKU(p.Name)
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	if err := checkProduct(p); err != nil {
		return Product{}, err
	}
	if l.productIndex(p.ID) >= 0 {
		return Product{}, fmt.Errorf("product %q: %w", p.ID, ErrDuplicate)
	}
	if other, ok := l.ProductBySKU(p.SKU); ok {
		return Product{}, fmt.Errorf("SKU %q of %s: %w", p.SKU, other.Name, ErrDuplicate)
	}
	l.products = append(l.products, p)
	log.Debug().Str("product", p.ID).Str("sku", p.SKU).Msg("product added")
	return p, nil
}

// UpdateProduct replaces the product with the same id. Editing the stock is a
// manual inventory adjustment; it does not create a transaction.
func (l *Ledger) UpdateProduct(p Product) error {
	i := l.productIndex(p.ID)
	if i < 0 {
		return fmt.Errorf("product %q: %w", p.ID, ErrNotFound)
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := checkProduct(p); err != nil {
		return err
	}
	if other, ok := l.ProductBySKU(p.SKU); ok && other.ID != p.ID {
		return fmt.Errorf("SKU %q of %s: %w", p.SKU, other.Name, ErrDuplicate)
	}
	l.products[i] = p
	return nil
}

// DeleteProduct removes a product from the catalog. Past transactions keep
// their copy of its name and price.
func (l *Ledger) DeleteProduct(id string) error {
	i := l.productIndex(id)
	if i < 0 {
		return fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	l.products = slices.Delete(l.products, i, i+1)
	return nil
}

// ProductBySKU returns the product with that SKU, ignoring case. It is the
// lookup behind barcode scanning.
func (l *Ledger) ProductBySKU(sku string) (Product, bool) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Product{}, false
	}
	for _, p := range l.products {
		if strings.EqualFold(p.SKU, sku) {
			return p, true
		}
	}
	return Product{}, false
}

// SearchProducts returns the products whose name or SKU contains term,
// ignoring case and diacritics. An empty term returns the whole catalog.
func (l *Ledger) SearchProducts(term string) []Product {
	term = Fold(strings.TrimSpace(term))
	var found []Product
	for _, p := range l.products {
		if term == "" || strings.Contains(Fold(p.Name), term) || strings.Contains(Fold(p.SKU), term) {
			found = append(found, p)
		}
	}
	return found
}

// Categories returns the distinct product categories, sorted.
func (l *Ledger) Categories() []string {
	var cats []string
	for _, p := range l.products {
		if p.Category != "" && !slices.Contains(cats, p.Category) {
			cats = append(cats, p.Category)
		}
	}
	slices.Sort(cats)
	return cats
}

func checkProduct(p Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: product name is required", ErrInvalid)
	case p.CostPrice.IsNegative() || p.SalePrice.IsNegative():
		return fmt.Errorf("%w: prices of %s cannot be negative", ErrInvalid, p.Name)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock of %s cannot be negative", ErrInvalid, p.Name)
	case p.MinStock < 0:
		return fmt.Errorf("%w: minimum stock of %s cannot be negative", ErrInvalid, p.Name)
	case len(p.Image) > MaxImageSize:
		return fmt.Errorf("%w: image of %s is larger than 1MB", ErrInvalid, p.Name)
	}
	return nil
}

package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/smartbiz"
	md "github.com/nao1215/markdown"
)

// InventoryMarkdown renders the product catalog with stock levels.
func InventoryMarkdown(products []smartbiz.Product, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Inventory")
	if len(products) == 0 {
		doc.PlainText(md.Italic("No products."))
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"SKU", "Name", "Category", "Cost", "Price", "Stock"},
	}
	var value int64
	for _, p := range products {
		stock := fmt.Sprintf("%d %s", p.Stock, p.Unit)
		if p.IsLowStock() {
			stock = md.Bold(stock)
		}
		table.Rows = append(table.Rows, []string{
			md.Code(p.SKU),
			cell(p.Name),
			cell(p.Category),
			smartbiz.Format(p.CostPrice, cur),
			smartbiz.Format(p.SalePrice, cur),
			stock,
		})
		value += p.Stock
	}
	doc.Table(table)
	doc.PlainTextf("%d products, %d units in stock. Bold stock is at or below its minimum.", len(products), value)
	return doc.String()
}

// ProductMarkdown renders the card of a product.
func ProductMarkdown(p smartbiz.Product, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.Name)
	doc.PlainTextf("%s %s, %s", md.Code(p.SKU), md.Code(p.ID), p.Category)
	doc.LF()
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Sale price", md.Bold(smartbiz.Format(p.SalePrice, cur))},
		Rows: [][]string{
			{"Cost price", smartbiz.Format(p.CostPrice, cur)},
			{"Margin", smartbiz.M(p.Margin(), cur).SignedString()},
			{"Stock", fmt.Sprintf("%d %s", p.Stock, p.Unit)},
			{"Minimum stock", fmt.Sprint(p.MinStock)},
		},
	})
	switch {
	case p.IsOutOfStock():
		doc.Blockquote("Out of stock.")
	case p.IsLowStock():
		doc.Blockquote("Low stock, reorder soon.")
	}
	if p.Image != "" {
		doc.LF()
		doc.PlainTextf("Image: %s", imageSummary(p.Image))
	}
	return doc.String()
}

// imageSummary describes a data URL without printing it.
func imageSummary(dataURL string) string {
	kind, _, _ := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ";")
	if !strings.HasPrefix(dataURL, "data:") {
		return dataURL
	}
	return fmt.Sprintf("%s, %d bytes encoded", kind, len(dataURL))
}

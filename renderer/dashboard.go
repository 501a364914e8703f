package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/smartbiz"
	md "github.com/nao1215/markdown"
)

// DashboardMarkdown renders the overview of the books.
func DashboardMarkdown(d smartbiz.Dashboard, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dashboard")
	doc.PlainTextf("%d products, %d contacts, %d transactions", d.Products, d.Contacts, d.Transactions)
	doc.LF()

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Sales", md.Bold(smartbiz.Format(d.SalesTotal, cur))},
		Rows: [][]string{
			{"Purchases", smartbiz.Format(d.PurchaseTotal, cur)},
			{"Gross margin", smartbiz.M(d.GrossMargin, cur).SignedString()},
		},
	})

	doc.H2("Cash Flow")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Net", md.Bold(smartbiz.M(d.Net, cur).SignedString())},
		Rows: [][]string{
			{"Received", smartbiz.Format(d.Income, cur)},
			{"Paid", smartbiz.Format(d.Expense, cur)},
		},
	})

	doc.H2("Debts")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Owed by", "Amount"},
		Rows: [][]string{
			{smartbiz.Customer.Label(), smartbiz.Format(d.CustomerDebt, cur)},
			{smartbiz.Supplier.Label(), smartbiz.Format(d.SupplierDebt, cur)},
		},
	})

	if len(d.LowStock) > 0 {
		doc.H2("Stock Alerts")
		var alerts []string
		for _, p := range d.LowStock {
			status := "low"
			if p.IsOutOfStock() {
				status = md.Bold("out of stock")
			}
			alerts = append(alerts, fmt.Sprintf("%s (%s): %d %s left, minimum %d, %s",
				p.Name, md.Code(p.SKU), p.Stock, p.Unit, p.MinStock, status))
		}
		doc.BulletList(alerts...)
		doc.LF()
	}

	if len(d.Recent) > 0 {
		doc.H2("Recent Transactions")
		var lines []string
		for _, tx := range d.Recent {
			lines = append(lines, Transaction(tx, cur))
		}
		doc.OrderedList(lines...)
	}

	return doc.String()
}

package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/smartbiz"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders a sales or purchase report. period describes the
// selected dates, empty for all time.
func ReportMarkdown(r smartbiz.Report, period, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Sales Report"
	if r.Type == smartbiz.Purchase {
		title = "Purchase Report"
	}
	if period != "" {
		title += " " + period
	}
	doc.H1(title)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Total", md.Bold(smartbiz.Format(r.Total, cur))},
		Rows: [][]string{
			{"Paid", smartbiz.Format(r.Paid, cur)},
			{"Debt", smartbiz.Format(r.Debt, cur)},
			{"Discounts", smartbiz.Format(r.Discount, cur)},
			{"Orders", fmt.Sprint(len(r.Transactions))},
			{"Items", fmt.Sprint(r.Quantity)},
		},
	})

	if len(r.Transactions) == 0 {
		return doc.String()
	}
	doc.H2("Orders")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "ID", "Contact", "Total", "Paid", "Debt"},
	}
	for _, tx := range r.Transactions {
		table.Rows = append(table.Rows, []string{
			formatDate(tx.Date),
			tx.ID,
			counterpart(tx),
			smartbiz.Format(tx.Total, cur),
			smartbiz.Format(tx.PaidAmount, cur),
			amount(tx.DebtAmount, cur),
		})
	}
	doc.Table(table)
	return doc.String()
}

// FinanceMarkdown renders the cash journal.
func FinanceMarkdown(f smartbiz.Finance, period, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Cash Journal"
	if period != "" {
		title += " " + period
	}
	doc.H1(title)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Net", md.Bold(smartbiz.M(f.Net, cur).SignedString())},
		Rows: [][]string{
			{"Received", smartbiz.Format(f.Income, cur)},
			{"Paid", smartbiz.Format(f.Expense, cur)},
		},
	})
	if len(f.Transactions) == 0 {
		doc.PlainText(md.Italic("No transactions."))
		return doc.String()
	}
	doc.H2("Transactions")
	doc.Table(transactionTable(f.Transactions, cur))
	return doc.String()
}

// DebtsMarkdown renders the debt book of customers or suppliers.
func DebtsMarkdown(b smartbiz.DebtBook, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if b.Type == smartbiz.Supplier {
		doc.H1("Owed to Suppliers")
	} else {
		doc.H1("Owed by Customers")
	}
	if len(b.Contacts) == 0 {
		doc.PlainText(md.Italic("No outstanding debt."))
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"ID", "Name", "Phone", "Balance"},
	}
	for _, c := range b.Contacts {
		table.Rows = append(table.Rows, []string{c.ID, cell(c.Name), c.Phone, smartbiz.Format(c.Balance, cur)})
	}
	table.Rows = append(table.Rows, []string{"", md.Bold("Total"), "", md.Bold(smartbiz.Format(b.Total, cur))})
	doc.Table(table)
	return doc.String()
}

package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/smartbiz"
	md "github.com/nao1215/markdown"
)

// Transaction renders a transaction to a one-line summary.
func Transaction(tx smartbiz.Transaction, cur string) string {
	total := smartbiz.Format(tx.Total, cur)
	paid := smartbiz.Format(tx.PaidAmount, cur)
	switch tx.Type {
	case smartbiz.Sale:
		s := fmt.Sprintf("%s sold %s to %s for %s", md.Code(tx.ID), itemCount(tx.Quantity()), tx.ContactName, total)
		if tx.DebtAmount.IsPositive() {
			s += fmt.Sprintf(", %s on credit", smartbiz.Format(tx.DebtAmount, cur))
		}
		return s
	case smartbiz.Purchase:
		s := fmt.Sprintf("%s bought %s from %s for %s", md.Code(tx.ID), itemCount(tx.Quantity()), tx.ContactName, total)
		if tx.DebtAmount.IsPositive() {
			s += fmt.Sprintf(", %s owed", smartbiz.Format(tx.DebtAmount, cur))
		}
		return s
	case smartbiz.Income:
		return fmt.Sprintf("%s received %s from %s", md.Code(tx.ID), paid, tx.ContactName)
	case smartbiz.Expense:
		return fmt.Sprintf("%s paid %s to %s", md.Code(tx.ID), paid, tx.ContactName)
	case smartbiz.DebtCollection:
		return fmt.Sprintf("%s collected %s from %s", md.Code(tx.ID), paid, tx.ContactName)
	case smartbiz.DebtPayment:
		return fmt.Sprintf("%s repaid %s to %s", md.Code(tx.ID), paid, tx.ContactName)
	default:
		return fmt.Sprintf("%s %s", md.Code(tx.ID), tx.Type)
	}
}

func itemCount(n int64) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// transactionTable lays out transactions, one per row, with their cash
// movement signed.
func transactionTable(txs []smartbiz.Transaction, cur string) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "ID", "Type", "Contact", "Total", "Cash"},
	}
	for _, tx := range txs {
		cash := tx.PaidAmount
		if tx.Type.IsOutflow() {
			cash = cash.Neg()
		}
		table.Rows = append(table.Rows, []string{
			formatDate(tx.Date),
			tx.ID,
			tx.Type.Label(),
			counterpart(tx),
			amount(tx.Total, cur),
			smartbiz.M(cash, cur).SignedString(),
		})
	}
	return table
}

// TransactionMarkdown renders the detail of a transaction.
func TransactionMarkdown(tx smartbiz.Transaction, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1f("%s %s", tx.Type.Label(), tx.ID)
	doc.PlainTextf("%s, %s", formatDate(tx.Date), counterpart(tx))
	doc.LF()

	if len(tx.Items) > 0 {
		doc.Table(itemTable(tx.Items, cur))
	}
	rows := [][]string{}
	if len(tx.Items) > 0 {
		rows = append(rows,
			[]string{"Subtotal", smartbiz.Format(tx.Subtotal, cur)},
			[]string{"Discount", smartbiz.Format(tx.Discount, cur)},
		)
	}
	rows = append(rows, []string{"Paid", smartbiz.Format(tx.PaidAmount, cur)})
	if !tx.DebtAmount.IsZero() {
		rows = append(rows, []string{"Debt", smartbiz.M(tx.DebtAmount, cur).SignedString()})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Total", md.Bold(smartbiz.Format(tx.Total, cur))},
		Rows:      rows,
	})
	if tx.Note != "" {
		doc.Blockquote(tx.Note)
	}
	return doc.String()
}

func itemTable(items []smartbiz.TransactionItem, cur string) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Product", "Qty", "Price", "Total"},
	}
	for _, it := range items {
		table.Rows = append(table.Rows, []string{
			cell(it.Name),
			fmt.Sprint(it.Quantity),
			smartbiz.Format(it.Price, cur),
			smartbiz.Format(it.Total, cur),
		})
	}
	return table
}

// TransactionsMarkdown renders a list of transactions under title.
func TransactionsMarkdown(title string, txs []smartbiz.Transaction, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	if len(txs) == 0 {
		doc.PlainText(md.Italic("No transactions."))
		return doc.String()
	}
	doc.Table(transactionTable(txs, cur))
	return doc.String()
}

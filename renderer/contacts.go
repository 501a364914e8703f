package renderer

import (
	"bytes"

	"github.com/etnz/smartbiz"
	md "github.com/nao1215/markdown"
)

// ContactsMarkdown renders the customers and suppliers.
func ContactsMarkdown(contacts []smartbiz.Contact, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Contacts")
	if len(contacts) == 0 {
		doc.PlainText(md.Italic("No contacts."))
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"ID", "Name", "Type", "Phone", "Balance"},
	}
	for _, c := range contacts {
		table.Rows = append(table.Rows, []string{
			c.ID,
			cell(c.Name),
			c.Type.Label(),
			c.Phone,
			amount(c.Balance, cur),
		})
	}
	doc.Table(table)
	return doc.String()
}

// HistoryMarkdown renders the card of a contact with its transactions.
func HistoryMarkdown(c smartbiz.Contact, txs []smartbiz.Transaction, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(c.Name)
	rows := [][]string{{"Phone", c.Phone}}
	if c.Email != "" {
		rows = append(rows, []string{"Email", c.Email})
	}
	if c.Address != "" {
		rows = append(rows, []string{"Address", cell(c.Address)})
	}
	rows = append(rows, []string{"Balance", md.Bold(smartbiz.M(c.Balance, cur).SignedString())})
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{c.Type.Label(), md.Code(c.ID)},
		Rows:      rows,
	})

	doc.H2("History")
	if len(txs) == 0 {
		doc.PlainText(md.Italic("No transactions."))
		return doc.String()
	}
	doc.Table(transactionTable(txs, cur))
	return doc.String()
}

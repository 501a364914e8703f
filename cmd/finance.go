package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/renderer"
	"github.com/google/subcommands"
)

type financeCmd struct {
	rangeFlags
	term string
	typ  string
}

func (*financeCmd) Name() string     { return "finance" }
func (*financeCmd) Synopsis() string { return "display the cash journal" }
func (*financeCmd) Usage() string {
	return `sbz finance [-q <term>] [-type <type>] [-p <period>] [-d <date>] [-from <date>] [-to <date>]

  Lists the transactions with the cash received and paid, newest first, and
  the net cash flow.

Usage Examples:
# This month's expenses.
$ sbz finance -p month -type expense
`
}

func (c *financeCmd) SetFlags(f *flag.FlagSet) {
	c.rangeFlags.SetFlags(f)
	f.StringVar(&c.term, "q", "", "Search in transaction ids and contact names")
	f.StringVar(&c.typ, "type", "", "Only list transactions of this type")
}

func (c *financeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filters, rg, err := c.filters(c.term)
	if err != nil {
		return usage("%v", err)
	}
	if c.typ != "" {
		typ, err := smartbiz.ParseTransactionType(c.typ)
		if err != nil {
			return usage("%v", err)
		}
		filters = append(filters, smartbiz.ByType(typ))
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	printMarkdown(renderer.FinanceMarkdown(w.ledger.Finance(filters...), rangeLabel(rg.String()), env.Currency))
	return subcommands.ExitSuccess
}

// rangeLabel hides the default, all time, range from report titles.
func rangeLabel(s string) string {
	if s == "all time" {
		return ""
	}
	return s
}

// cashCmd records an income or an expense.
type cashCmd struct {
	typ     smartbiz.TransactionType
	name    string
	contact string
	note    string
	date    string
}

func newCashCmd(typ smartbiz.TransactionType) *cashCmd { return &cashCmd{typ: typ} }

func (c *cashCmd) Name() string { return strings.ToLower(string(c.typ)) }
func (c *cashCmd) Synopsis() string {
	if c.typ == smartbiz.Income {
		return "record cash received outside of sales"
	}
	return "record cash paid outside of purchases"
}
func (c *cashCmd) Usage() string {
	return fmt.Sprintf(`sbz %[1]s [-name <name>] [-c <contact>] [-n <note>] [-d <date>] <amount>

  %[2]s.

Usage Examples:
$ sbz %[1]s -name "Tiền điện" -n "tháng 10" 1,200,000
`, c.Name(), strings.ToUpper(c.Synopsis()[:1])+c.Synopsis()[1:])
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the counterpart")
	f.StringVar(&c.contact, "c", "", "Contact, by id, name or phone")
	f.StringVar(&c.note, "n", "", "Note")
	f.StringVar(&c.date, "d", "", "Date, defaults to now")
}

func (c *cashCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("%s takes exactly one amount", c.Name())
	}
	e := smartbiz.Entry{Name: c.name, Note: c.note}
	var err error
	if e.Amount, err = parseAmount(f.Arg(0)); err != nil {
		return usage("%v", err)
	}
	if e.Date, err = parseDate(c.date); err != nil {
		return usage("%v", err)
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	if c.contact != "" {
		ct, err := resolveContact(w.ledger, "", c.contact)
		if err != nil {
			return fail(err)
		}
		e.ContactID = ct.ID
	}
	var tx smartbiz.Transaction
	if c.typ == smartbiz.Income {
		tx, err = w.ledger.NewIncome(e)
	} else {
		tx, err = w.ledger.NewExpense(e)
	}
	if err != nil {
		return fail(err)
	}
	w.ledger.Record(ctx, tx)
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TransactionMarkdown(tx, env.Currency))
	return subcommands.ExitSuccess
}

type txEditCmd struct {
	amount string
	paid   string
	note   string
	date   string
}

func (*txEditCmd) Name() string     { return "tx-edit" }
func (*txEditCmd) Synopsis() string { return "correct a recorded transaction" }
func (*txEditCmd) Usage() string {
	return `sbz tx-edit [-d <date>] [-amount <amount>] [-paid <amount>] [-n <note>] <transaction id>

  Corrects the date, note, amount or paid amount of a transaction. Debts
  move accordingly. The items of a sale or a purchase cannot change: delete
  it and record it again.
`
}

func (c *txEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount of an income, expense or debt settlement")
	f.StringVar(&c.paid, "paid", "", "Amount paid at checkout of a sale or purchase")
	f.StringVar(&c.note, "n", "", "Note")
	f.StringVar(&c.date, "d", "", "Date")
}

func (c *txEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("tx-edit takes exactly one transaction id")
	}
	var a smartbiz.Amendment
	var err error
	if a.Date, err = parseDate(c.date); err != nil {
		return usage("%v", err)
	}
	if a.Amount, err = parseOptionalAmount(c.amount); err != nil {
		return usage("%v", err)
	}
	if a.Paid, err = parseOptionalAmount(c.paid); err != nil {
		return usage("%v", err)
	}
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "n" {
			a.Note = &c.note
		}
	})
	if a.Date.IsZero() && !a.Amount.Valid && !a.Paid.Valid && a.Note == nil {
		return usage("nothing to change")
	}

	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	r, err := w.ledger.Amend(f.Arg(0), a)
	if err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TransactionMarkdown(r.Transaction, env.Currency))
	return subcommands.ExitSuccess
}

type txDeleteCmd struct{}

func (*txDeleteCmd) Name() string     { return "tx-delete" }
func (*txDeleteCmd) Synopsis() string { return "delete a transaction and reverse its effects" }
func (*txDeleteCmd) Usage() string {
	return `sbz tx-delete <transaction id>

  Deletes a transaction: the stock moves back and the contact's debt loses
  the transaction's debt.
`
}

func (*txDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*txDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("tx-delete takes exactly one transaction id")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	r, err := w.ledger.DeleteTransaction(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Deleted %s\n", renderer.Transaction(r.Transaction, env.Currency))
	return subcommands.ExitSuccess
}

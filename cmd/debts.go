package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/renderer"
	"github.com/google/subcommands"
)

type debtsCmd struct {
	typ  string
	term string
}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "list the outstanding debts" }
func (*debtsCmd) Usage() string {
	return `sbz debts [-type customer|supplier] [-q <term>]

  Lists the customers who owe money to the shop, or with -type supplier the
  suppliers the shop owes money to.
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "customer", "customer or supplier")
	f.StringVar(&c.term, "q", "", "Search in names and phones")
}

func (c *debtsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ct, err := smartbiz.ParseContactType(c.typ)
	if err != nil {
		return usage("%v", err)
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()
	printMarkdown(renderer.DebtsMarkdown(w.ledger.Debts(ct, c.term), env.Currency))
	return subcommands.ExitSuccess
}

// settleCmd records a debt collection or a debt payment.
type settleCmd struct {
	typ  smartbiz.TransactionType
	ct   smartbiz.ContactType
	note string
	date string
	all  bool
}

func newSettleCmd(typ smartbiz.TransactionType) *settleCmd {
	if typ == smartbiz.DebtCollection {
		return &settleCmd{typ: typ, ct: smartbiz.Customer}
	}
	return &settleCmd{typ: typ, ct: smartbiz.Supplier}
}

func (c *settleCmd) Name() string {
	if c.typ == smartbiz.DebtCollection {
		return "collect"
	}
	return "pay"
}

func (c *settleCmd) Synopsis() string {
	if c.typ == smartbiz.DebtCollection {
		return "record money received from a customer against their debt"
	}
	return "record money paid to a supplier against the shop's debt"
}

func (c *settleCmd) Usage() string {
	who := "customer"
	if c.ct == smartbiz.Supplier {
		who = "supplier"
	}
	return fmt.Sprintf(`sbz %[1]s [-n <note>] [-d <date>] <%[2]s> [<amount>|-all]

  %[3]s. The amount may exceed the balance,
  leaving a credit. With -all the whole balance is settled.

Usage Examples:
$ sbz %[1]s -all %[4]s
`, c.Name(), who, c.Synopsis(), map[smartbiz.ContactType]string{smartbiz.Customer: "c1", smartbiz.Supplier: "s1"}[c.ct])
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "n", "", "Note, generated from the contact name when empty")
	f.StringVar(&c.date, "d", "", "Date, defaults to now")
	f.BoolVar(&c.all, "all", false, "Settle the whole balance")
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch {
	case c.all && f.NArg() != 1:
		return usage("%s -all takes exactly one contact", c.Name())
	case !c.all && f.NArg() != 2:
		return usage("%s takes a contact and an amount", c.Name())
	}
	e := smartbiz.Entry{Note: c.note}
	var err error
	if e.Date, err = parseDate(c.date); err != nil {
		return usage("%v", err)
	}
	if !c.all {
		if e.Amount, err = parseAmount(f.Arg(1)); err != nil {
			return usage("%v", err)
		}
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	ct, err := resolveContact(w.ledger, c.ct, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	e.ContactID = ct.ID
	if c.all {
		if !ct.Balance.IsPositive() {
			return fail(fmt.Errorf("%s has no debt", ct.Name))
		}
		e.Amount = ct.Balance
	}
	var tx smartbiz.Transaction
	if c.typ == smartbiz.DebtCollection {
		tx, err = w.ledger.NewDebtCollection(e)
	} else {
		tx, err = w.ledger.NewDebtPayment(e)
	}
	if err != nil {
		return fail(err)
	}
	w.ledger.Record(ctx, tx)
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	ct, _ = w.ledger.Contact(ct.ID)
	fmt.Fprintf(stdout, "%s\n%s now has a balance of %s\n", renderer.Transaction(tx, env.Currency), ct.Name, smartbiz.Format(ct.Balance, env.Currency))
	return subcommands.ExitSuccess
}

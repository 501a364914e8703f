package cmd

import (
	"context"
	"flag"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	rangeFlags
	typ  string
	term string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the sales or purchase report" }
func (*reportCmd) Usage() string {
	return `sbz report [-type sale|purchase] [-q <term>] [-p <period>] [-d <date>] [-from <date>] [-to <date>]

  Lists the sales, or the purchases, with their total, paid amount, debt,
  discounts and number of items.

Usage Examples:
# Today's sales.
$ sbz report -p day
# Last week's purchases from a supplier.
$ sbz report -type purchase -p week -d -1w -q NPP
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.rangeFlags.SetFlags(f)
	f.StringVar(&c.typ, "type", "sale", "sale or purchase")
	f.StringVar(&c.term, "q", "", "Search in transaction ids and contact names")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := smartbiz.ParseTransactionType(c.typ)
	if err != nil {
		return usage("%v", err)
	}
	filters, rg, err := c.filters(c.term)
	if err != nil {
		return usage("%v", err)
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	r, err := w.ledger.Report(typ, filters...)
	if err != nil {
		return usage("%v", err)
	}
	printMarkdown(renderer.ReportMarkdown(r, rangeLabel(rg.String()), env.Currency))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/renderer"
	"github.com/google/subcommands"
)

// orderFlags are the flags of a sale or a purchase.
type orderFlags struct {
	contact  string
	discount string
	paid     string
	note     string
	date     string
}

func (o *orderFlags) SetFlags(f *flag.FlagSet, who string) {
	f.StringVar(&o.contact, "c", "", who+", by id, name or phone")
	f.StringVar(&o.discount, "discount", "", "Discount on the subtotal")
	f.StringVar(&o.paid, "paid", "", "Amount paid at checkout")
	f.StringVar(&o.note, "n", "", "Note")
	f.StringVar(&o.date, "d", "", "Date of the order, defaults to now")
}

// order builds the order of the cart lines in args.
func (o *orderFlags) order(l *smartbiz.Ledger, ct smartbiz.ContactType, args []string) (smartbiz.Order, error) {
	var order smartbiz.Order
	var err error
	if order.Date, err = parseDate(o.date); err != nil {
		return order, err
	}
	if o.discount != "" {
		if order.Discount, err = parseAmount(o.discount); err != nil {
			return order, err
		}
	}
	if order.Paid, err = parseOptionalAmount(o.paid); err != nil {
		return order, err
	}
	if o.contact != "" {
		c, err := resolveContact(l, ct, o.contact)
		if err != nil {
			return order, err
		}
		order.ContactID = c.ID
	}
	order.Note = o.note
	order.Lines, err = orderLines(l, args)
	return order, err
}

func (w *workspace) receiptOptions(qr bool) renderer.ReceiptOptions {
	return renderer.ReceiptOptions{
		Invoice:  w.settings.Invoice,
		Bank:     w.settings.Bank,
		Currency: env.Currency,
		QRCode:   qr,
	}
}

type sellCmd struct {
	orderFlags
	qr bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale and print its receipt" }
func (*sellCmd) Usage() string {
	return `sbz sell [-c <customer>] [-discount <amount>] [-paid <amount>] [-n <note>] [-d <date>] <product>[:<qty>][@<price>]...

  Records a sale of the given products, found by id, SKU or name, one unit
  at the sale price by default. The stock of each product decreases.

  Without customer the sale is a walk-in sale, paid in full by default.
  With a customer, whatever is not paid is added to their debt.

Usage Examples:
# Sells two AirPods and an iPhone at a negotiated price, on credit.
$ sbz sell -c "Nguyễn Văn A" -paid 0 APP2:2 IP15PM@29,500,000
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.orderFlags.SetFlags(f, "Customer")
	f.BoolVar(&c.qr, "qr", true, "Draw the payment QR code on the receipt")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	order, err := c.order(w.ledger, smartbiz.Customer, f.Args())
	if err != nil {
		return usage("%v", err)
	}
	tx, err := w.ledger.NewSale(order)
	if err != nil {
		return fail(err)
	}
	w.ledger.Record(ctx, tx)
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ReceiptMarkdown(tx, w.receiptOptions(c.qr)))
	return subcommands.ExitSuccess
}

type purchaseCmd struct {
	orderFlags
}

func (*purchaseCmd) Name() string     { return "purchase" }
func (*purchaseCmd) Synopsis() string { return "record a purchase from a supplier" }
func (*purchaseCmd) Usage() string {
	return `sbz purchase -c <supplier> [-discount <amount>] [-paid <amount>] [-n <note>] [-d <date>] <product>[:<qty>][@<price>]...

  Records the purchase of the given products, one unit at the cost price by
  default. The stock of each product increases. Nothing is paid by default:
  the unpaid amount is added to what the shop owes the supplier.

Usage Examples:
$ sbz purchase -c NPP -paid 50,000,000 MBA-M3:5
`
}

func (c *purchaseCmd) SetFlags(f *flag.FlagSet) { c.orderFlags.SetFlags(f, "Supplier") }

func (c *purchaseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.contact == "" {
		return usage("a purchase needs a supplier, use -c")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	order, err := c.order(w.ledger, smartbiz.Supplier, f.Args())
	if err != nil {
		return usage("%v", err)
	}
	tx, err := w.ledger.NewPurchase(order)
	if err != nil {
		return fail(err)
	}
	w.ledger.Record(ctx, tx)
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PurchaseSlipMarkdown(tx, w.receiptOptions(false)))
	return subcommands.ExitSuccess
}

type receiptCmd struct {
	qr bool
}

func (*receiptCmd) Name() string     { return "receipt" }
func (*receiptCmd) Synopsis() string { return "print the receipt of a transaction" }
func (*receiptCmd) Usage() string {
	return `sbz receipt <transaction id>

  Prints the receipt of a sale, the slip of a purchase, or the details of
  any other transaction.
`
}

func (c *receiptCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.qr, "qr", true, "Draw the payment QR code on the receipt of a sale")
}

func (c *receiptCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("receipt takes exactly one transaction id")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	tx, ok := w.ledger.Transaction(f.Arg(0))
	if !ok {
		return usage("unknown transaction %q", f.Arg(0))
	}
	switch tx.Type {
	case smartbiz.Sale:
		printMarkdown(renderer.ReceiptMarkdown(tx, w.receiptOptions(c.qr)))
	case smartbiz.Purchase:
		printMarkdown(renderer.PurchaseSlipMarkdown(tx, w.receiptOptions(false)))
	default:
		printMarkdown(renderer.TransactionMarkdown(tx, env.Currency))
	}
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/renderer"
	"github.com/google/subcommands"
)

type contactsCmd struct {
	typ  string
	term string
}

func (*contactsCmd) Name() string     { return "contacts" }
func (*contactsCmd) Synopsis() string { return "list the customers and suppliers" }
func (*contactsCmd) Usage() string {
	return `sbz contacts [-type customer|supplier] [-q <term>]

  Lists the contacts whose name or phone contains the term, with their
  balance.
`
}

func (c *contactsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Only list customers or suppliers")
	f.StringVar(&c.term, "q", "", "Search term")
}

func (c *contactsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var ct smartbiz.ContactType
	if c.typ != "" {
		var err error
		if ct, err = smartbiz.ParseContactType(c.typ); err != nil {
			return usage("%v", err)
		}
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()
	printMarkdown(renderer.ContactsMarkdown(w.ledger.SearchContacts(ct, c.term), env.Currency))
	return subcommands.ExitSuccess
}

// contactFlags are the editable fields of a contact.
type contactFlags struct {
	name, phone, email, address, typ string
}

func (c *contactFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name")
	f.StringVar(&c.phone, "phone", "", "Phone number")
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.address, "address", "", "Address")
	f.StringVar(&c.typ, "type", "", "customer or supplier")
}

// apply sets the fields of ct named by the flags set in f.
func (c *contactFlags) apply(f *flag.FlagSet, ct *smartbiz.Contact) error {
	var err error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			ct.Name = c.name
		case "phone":
			ct.Phone = c.phone
		case "email":
			ct.Email = c.email
		case "address":
			ct.Address = c.address
		case "type":
			ct.Type, err = smartbiz.ParseContactType(c.typ)
		}
	})
	return err
}

type contactAddCmd struct {
	contactFlags
}

func (*contactAddCmd) Name() string     { return "contact-add" }
func (*contactAddCmd) Synopsis() string { return "add a customer or a supplier" }
func (*contactAddCmd) Usage() string {
	return `sbz contact-add -name <name> [-type customer|supplier] [-phone <phone>] [-email <email>] [-address <address>]

  Adds a contact with no debt. Contacts are customers unless -type says
  otherwise. Phone numbers are checked and stored without separators.

Usage Examples:
$ sbz contact-add -name "Lê Văn C" -phone "090.111.2233"
`
}

func (c *contactAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ct := smartbiz.Contact{Type: smartbiz.Customer}
	if err := c.apply(f, &ct); err != nil {
		return usage("%v", err)
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	ct, err = w.ledger.AddContact(ct)
	if err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HistoryMarkdown(ct, nil, env.Currency))
	return subcommands.ExitSuccess
}

type contactEditCmd struct {
	contactFlags
}

func (*contactEditCmd) Name() string     { return "contact-edit" }
func (*contactEditCmd) Synopsis() string { return "change the details of a contact" }
func (*contactEditCmd) Usage() string {
	return `sbz contact-edit [<flags>] <contact>

  Changes the given fields of a contact, found by id, name or phone. The
  balance only moves with transactions.
`
}

func (c *contactEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("contact-edit takes exactly one contact")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	ct, err := resolveContact(w.ledger, "", f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := c.apply(f, &ct); err != nil {
		return usage("%v", err)
	}
	if err := w.ledger.UpdateContact(ct); err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	ct, _ = w.ledger.Contact(ct.ID)
	printMarkdown(renderer.HistoryMarkdown(ct, w.ledger.History(ct.ID), env.Currency))
	return subcommands.ExitSuccess
}

type contactDeleteCmd struct{}

func (*contactDeleteCmd) Name() string     { return "contact-delete" }
func (*contactDeleteCmd) Synopsis() string { return "remove a contact" }
func (*contactDeleteCmd) Usage() string {
	return `sbz contact-delete <contact>

  Removes a contact. Past transactions keep their copy of its name.
`
}

func (*contactDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*contactDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("contact-delete takes exactly one contact")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	ct, err := resolveContact(w.ledger, "", f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := w.ledger.DeleteContact(ct.ID); err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Deleted %s (%s)\n", ct.Name, ct.ID)
	return subcommands.ExitSuccess
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display a contact's card and transactions" }
func (*historyCmd) Usage() string {
	return `sbz history <contact>

  Displays the details and balance of a contact, found by id, name or
  phone, with all their transactions, newest first.
`
}

func (*historyCmd) SetFlags(*flag.FlagSet) {}

func (*historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("history takes exactly one contact")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	ct, err := resolveContact(w.ledger, "", f.Arg(0))
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HistoryMarkdown(ct, w.ledger.History(ct.ID), env.Currency))
	return subcommands.ExitSuccess
}

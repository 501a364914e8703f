package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

// View is a screen of the application. Commands are grouped by view, and
// each view has a default command run by "sbz view <name>".
type View int

const (
	Dashboard View = iota
	Inventory
	Sales
	Purchases
	Finance
	Contacts
	Debt
	Reports
	Settings
)

var viewNames = [...]string{"DASHBOARD", "INVENTORY", "SALES", "PURCHASES", "FINANCE", "CONTACTS", "DEBT", "REPORTS", "SETTINGS"}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// Group is the name of the commander group of the view's commands.
func (v View) Group() string { return strings.ToLower(v.String()) }

// ParseView returns the view named s, in any case.
func ParseView(s string) (View, error) {
	for i, name := range viewNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q, valid views are %s", s, strings.ToLower(strings.Join(viewNames[:], ", ")))
}

// router holds the default command of each view.
var router = map[View]subcommands.Command{}

// route registers cmd in the group of v, as its default command if def is
// set.
func route(c *subcommands.Commander, cmd subcommands.Command, v View, def bool) {
	c.Register(cmd, v.Group())
	if def {
		router[v] = cmd
	}
}

type viewCmd struct{}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "open a screen of the application" }
func (*viewCmd) Usage() string {
	return `sbz view <view> [<flags>] [<args>...]

  Runs the default command of a view with the given flags and arguments.
  Views are dashboard, inventory, sales, purchases, finance, contacts, debt,
  reports and settings.

Usage Examples:
$ sbz view debt -type supplier
$ sbz view sales IP15PM:1
`
}

func (*viewCmd) SetFlags(*flag.FlagSet) {}

func (*viewCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("missing view")
	}
	v, err := ParseView(f.Arg(0))
	if err != nil {
		return usage("%v", err)
	}
	target, ok := router[v]
	if !ok {
		return usage("view %s has no command", v)
	}
	fs := flag.NewFlagSet(target.Name(), flag.ContinueOnError)
	target.SetFlags(fs)
	if err := fs.Parse(f.Args()[1:]); err != nil {
		return subcommands.ExitUsageError
	}
	return target.Execute(ctx, fs, args...)
}

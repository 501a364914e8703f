// Command sbz runs a shop from the terminal: sales and purchases, stock,
// debts, cash and reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/smartbiz/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// answers shell completion requests, and exits, when run by the shell
	completion(commander).Complete(commander.Name())

	flag.Parse()
	if err := cmd.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the commands and flags of commander for the shell.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(fs)}
	})
	root.Sub["view"].Args = predict.Set{"dashboard", "inventory", "sales", "purchases", "finance", "contacts", "debt", "reports", "settings"}
	root.Sub["product-add"].Flags["image"] = predict.Files("*")
	root.Sub["product-edit"].Flags["image"] = predict.Files("*")
	return root
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = nil // takes no value
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}

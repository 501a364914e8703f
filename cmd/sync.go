package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/sheet"
	"github.com/etnz/smartbiz/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// pushed reports the result of a push.
func pushed(r sheet.Result) string {
	if r.LocalOnly {
		return fmt.Sprintf("Saved a local backup at %s, no web app configured.", r.Timestamp.Local().Format(time.DateTime))
	}
	return fmt.Sprintf("Synced at %s.", r.Timestamp.Local().Format(time.DateTime))
}

// storedBooks reads the books from st on every call, so that a long running
// push sees what other commands saved in the meantime.
func storedBooks(st store.Store) func(context.Context) (smartbiz.Snapshot, error) {
	return func(ctx context.Context) (smartbiz.Snapshot, error) {
		l, err := smartbiz.Load(ctx, st)
		if err != nil {
			return smartbiz.Snapshot{}, fmt.Errorf("cannot load the books: %w", err)
		}
		return l.Snapshot(), nil
	}
}

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "push the books to the spreadsheet" }
func (*syncCmd) Usage() string {
	return `sbz sync

  Sends the products, contacts and transactions to the spreadsheet web app
  set with "sbz settings-set sync.url=<url>". A local backup is kept even
  when the web app is not configured or cannot be reached.
`
}

func (*syncCmd) SetFlags(*flag.FlagSet) {}

func (*syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	r, err := sheet.New(w.settings.ScriptURL, w.store).Push(ctx, w.ledger.Snapshot())
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, pushed(r))
	return subcommands.ExitSuccess
}

type pullCmd struct{}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "replace the books with the spreadsheet's" }
func (*pullCmd) Usage() string {
	return `sbz pull

  Replaces the products, contacts and transactions with those of the
  spreadsheet web app. When it cannot be reached, the local backup of the
  last sync is used instead.
`
}

func (*pullCmd) SetFlags(*flag.FlagSet) {}

func (*pullCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	s, src, err := sheet.New(w.settings.ScriptURL, w.store).Pull(ctx)
	if err != nil {
		return fail(err)
	}
	if src == sheet.None {
		fmt.Fprintln(stdout, "Nothing to restore: no web app and no local backup.")
		return subcommands.ExitSuccess
	}
	w.ledger.Restore(*s)
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Restored %d products, %d contacts and %d transactions from the %s.\n",
		len(s.Products), len(s.Contacts), len(s.Transactions), src)
	return subcommands.ExitSuccess
}

type autoSyncCmd struct {
	every string
}

func (*autoSyncCmd) Name() string     { return "autosync" }
func (*autoSyncCmd) Synopsis() string { return "push the books periodically" }
func (*autoSyncCmd) Usage() string {
	return `sbz autosync [-every <schedule>]

  Pushes the books to the spreadsheet on a schedule until interrupted. The
  schedule is a cron expression or a descriptor such as "@every 15m" or
  "@hourly".
`
}

func (c *autoSyncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.every, "every", "@every 15m", "Schedule of the pushes")
}

func (c *autoSyncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	s, err := sheet.NewScheduler(c.every, sheet.New(w.settings.ScriptURL, w.store), storedBooks(w.store))
	if err != nil {
		return usage("%v", err)
	}
	s.Start()
	defer func() {
		shutdown, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Stop(shutdown)
	}()

	log.Info().Str("every", c.every).Msg("press Ctrl+C to stop")
	for {
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case r := <-s.Done():
			fmt.Fprintln(stdout, pushed(r))
		}
	}
}
